package esimgo

// OrderType selects between a real provisioning transaction and the
// provider's non-charging validate mode used in test deployments.
type OrderType string

const (
	OrderTypeTransaction OrderType = "transaction"
	OrderTypeValidate    OrderType = "validate"
)

// ProvisionRequest asks the provider to assign an eSIM for one bundle.
type ProvisionRequest struct {
	// BundleRef is the provider's product id for a destination + duration
	// data package.
	BundleRef string
	// OrderReference correlates the provisioning order with our payment
	// session for support lookups.
	OrderReference string
	Type           OrderType
}

// ProvisionResult carries the assigned device identifier and activation
// credentials. ProfileAddress and MatchingID together form the
// scan-to-install QR payload.
type ProvisionResult struct {
	OrderReference string
	ICCID          string
	ProfileAddress string
	MatchingID     string
}

// orderRequest is the provider wire format for creating an order.
type orderRequest struct {
	Type   string      `json:"type"`
	Assign bool        `json:"assign"`
	Order  []orderItem `json:"order"`
}

type orderItem struct {
	Type     string `json:"type"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// orderResponse is the provider wire format for a created order.
type orderResponse struct {
	OrderReference string          `json:"orderReference"`
	Status         string          `json:"status"`
	Order          []orderLineItem `json:"order"`
}

type orderLineItem struct {
	Item  string `json:"item"`
	ESIMs []esim `json:"esims"`
}

type esim struct {
	ICCID       string `json:"iccid"`
	SMDPAddress string `json:"smdpAddress"`
	MatchingID  string `json:"matchingId"`
}

type errorResponse struct {
	Message string `json:"message"`
}
