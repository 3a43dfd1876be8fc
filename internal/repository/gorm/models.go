package gorm

import (
	"time"

	"github.com/roamsim/roamsim/internal/domain/customer"
	"github.com/roamsim/roamsim/internal/domain/order"
	"github.com/roamsim/roamsim/internal/domain/plan"
	"github.com/roamsim/roamsim/internal/types"
	"github.com/shopspring/decimal"
)

// PlanModel is the database shape of a catalog plan. One row per
// (destination, locale), enforced by a unique index.
type PlanModel struct {
	ID              string `gorm:"primaryKey;size:64"`
	DestinationSlug string `gorm:"size:128;uniqueIndex:idx_destination_locale"`
	DestinationName string `gorm:"size:255"`
	Locale          string `gorm:"size:8;uniqueIndex:idx_destination_locale"`
	Currency        string `gorm:"size:3"`

	CompetitorName      string          `gorm:"size:255"`
	CompetitorDailyRate decimal.Decimal `gorm:"type:decimal(12,4)"`

	Durations []PlanDurationModel `gorm:"foreignKey:PlanID;references:ID"`

	Status    string `gorm:"size:32;default:published"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PlanModel) TableName() string { return "plans" }

// PlanDurationModel is one sellable duration of a plan with its cost and
// external references.
type PlanDurationModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	PlanID       string `gorm:"size:64;uniqueIndex:idx_plan_duration"`
	DurationDays int    `gorm:"uniqueIndex:idx_plan_duration"`

	WholesaleCost decimal.Decimal `gorm:"type:decimal(12,4)"`
	BundleRef     string          `gorm:"size:128"`
	PriceRefLive  string          `gorm:"size:128"`
	PriceRefTest  string          `gorm:"size:128"`
}

func (PlanDurationModel) TableName() string { return "plan_durations" }

// OrderModel is the database shape of an order. The unique index on
// payment_session_id is the reconciler's idempotency guarantee.
type OrderModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	OrderNumber string `gorm:"size:32;uniqueIndex"`

	PaymentSessionID string `gorm:"size:255;uniqueIndex"`
	PaymentIntentID  string `gorm:"size:255"`
	CustomerID       string `gorm:"size:64;index"`

	DestinationName string `gorm:"size:255"`
	PlanName        string `gorm:"size:255"`
	DurationDays    int
	Amount          int64
	Currency        string `gorm:"size:3"`
	Locale          string `gorm:"size:8"`

	OrderStatus string `gorm:"size:32"`

	ESIMStatus     string `gorm:"size:32"`
	ESIMOrderRef   string `gorm:"size:255"`
	ICCID          string `gorm:"size:32"`
	ProfileAddress string `gorm:"size:255"`
	MatchingID     string `gorm:"size:255"`
	QRPayload      string `gorm:"size:512"`

	PaidAt        *time.Time
	ProvisionedAt *time.Time

	Status    string `gorm:"size:32;default:published"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OrderModel) TableName() string { return "orders" }

// CustomerModel is the database shape of a customer, deduplicated by email.
type CustomerModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Email     string `gorm:"size:255;uniqueIndex"`
	Locale    string `gorm:"size:8"`
	Status    string `gorm:"size:32;default:published"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CustomerModel) TableName() string { return "customers" }

// FromPlanModel converts a database plan to the domain model.
func FromPlanModel(m *PlanModel) *plan.Plan {
	if m == nil {
		return nil
	}

	durations := make(map[types.PlanDuration]plan.DurationOption, len(m.Durations))
	for _, d := range m.Durations {
		durations[types.PlanDuration(d.DurationDays)] = plan.DurationOption{
			WholesaleCost: d.WholesaleCost,
			BundleRef:     d.BundleRef,
			PriceRefLive:  d.PriceRefLive,
			PriceRefTest:  d.PriceRefTest,
		}
	}

	return &plan.Plan{
		ID:                  m.ID,
		DestinationSlug:     m.DestinationSlug,
		DestinationName:     m.DestinationName,
		Locale:              m.Locale,
		Currency:            m.Currency,
		CompetitorName:      m.CompetitorName,
		CompetitorDailyRate: m.CompetitorDailyRate,
		Durations:           durations,
		BaseModel: types.BaseModel{
			Status:    types.Status(m.Status),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// FromOrderModel converts a database order to the domain model.
func FromOrderModel(m *OrderModel) *order.Order {
	if m == nil {
		return nil
	}

	return &order.Order{
		ID:               m.ID,
		OrderNumber:      m.OrderNumber,
		PaymentSessionID: m.PaymentSessionID,
		PaymentIntentID:  m.PaymentIntentID,
		CustomerID:       m.CustomerID,
		DestinationName:  m.DestinationName,
		PlanName:         m.PlanName,
		DurationDays:     types.PlanDuration(m.DurationDays),
		Amount:           m.Amount,
		Currency:         m.Currency,
		Locale:           m.Locale,
		OrderStatus:      types.OrderStatus(m.OrderStatus),
		ESIMStatus:       types.ESIMStatus(m.ESIMStatus),
		ESIMOrderRef:     m.ESIMOrderRef,
		ICCID:            m.ICCID,
		ProfileAddress:   m.ProfileAddress,
		MatchingID:       m.MatchingID,
		QRPayload:        m.QRPayload,
		PaidAt:           m.PaidAt,
		ProvisionedAt:    m.ProvisionedAt,
		BaseModel: types.BaseModel{
			Status:    types.Status(m.Status),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToOrderModel converts a domain order to its database shape.
func ToOrderModel(o *order.Order) *OrderModel {
	return &OrderModel{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		PaymentSessionID: o.PaymentSessionID,
		PaymentIntentID:  o.PaymentIntentID,
		CustomerID:       o.CustomerID,
		DestinationName:  o.DestinationName,
		PlanName:         o.PlanName,
		DurationDays:     o.DurationDays.Days(),
		Amount:           o.Amount,
		Currency:         o.Currency,
		Locale:           o.Locale,
		OrderStatus:      string(o.OrderStatus),
		ESIMStatus:       string(o.ESIMStatus),
		ESIMOrderRef:     o.ESIMOrderRef,
		ICCID:            o.ICCID,
		ProfileAddress:   o.ProfileAddress,
		MatchingID:       o.MatchingID,
		QRPayload:        o.QRPayload,
		PaidAt:           o.PaidAt,
		ProvisionedAt:    o.ProvisionedAt,
		Status:           string(o.Status),
	}
}

// FromCustomerModel converts a database customer to the domain model.
func FromCustomerModel(m *CustomerModel) *customer.Customer {
	if m == nil {
		return nil
	}
	return &customer.Customer{
		ID:     m.ID,
		Email:  m.Email,
		Locale: m.Locale,
		BaseModel: types.BaseModel{
			Status:    types.Status(m.Status),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
