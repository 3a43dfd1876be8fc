package email

// emailTemplates stores email templates as string constants
var emailTemplates = map[string]string{
	"order-confirmation.html": `<!DOCTYPE html>
<html>
<head>
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
    <title>Your eSIM is ready</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; font-size: 14px; line-height: 1.6; color: #333;">
    <p>Hi!</p>
    <p>Thanks for your order <strong>{{.order_number}}</strong> — your travel eSIM for
    <strong>{{.destination}}</strong> ({{.duration_days}} days) is ready to install.</p>

    <p><strong>Total: {{.amount_label}}</strong></p>

    <p>Scan this QR code from another device to install your eSIM:</p>
    <p><img src="{{.qr_image_url}}" alt="eSIM install QR code" width="300" height="300" /></p>

    <p><strong>How to install</strong></p>
    <ol>
        <li>Open Settings &rarr; Mobile/Cellular &rarr; Add eSIM.</li>
        <li>Choose "Use QR Code" and scan the code above.</li>
        <li>Keep the plan off until you land &mdash; it activates on first connection.</li>
    </ol>

    <p>If you can't scan, enter these manually:<br/>
    SM-DP+ address: <code>{{.profile_address}}</code><br/>
    Activation code: <code>{{.matching_id}}</code></p>

    <p>Safe travels!<br/>
    The RoamSIM team</p>
</body>
</html>`,
}
