package service

// GatewayOutcome is the internal reading of a Midtrans notification.
type GatewayOutcome string

const (
	OutcomeSuccess   GatewayOutcome = "success"
	OutcomePending   GatewayOutcome = "pending"
	OutcomeFailed    GatewayOutcome = "failed"
	OutcomeCancelled GatewayOutcome = "cancelled"
	OutcomeExpired   GatewayOutcome = "expired"
	OutcomeUnknown   GatewayOutcome = "unknown"
)

// MapMidtransStatus folds transaction_status and fraud_status into one
// outcome. A challenged capture stays pending until fraud review settles.
func MapMidtransStatus(transactionStatus, fraudStatus string) GatewayOutcome {
	switch transactionStatus {
	case "capture":
		switch fraudStatus {
		case "accept", "":
			return OutcomeSuccess
		case "challenge":
			return OutcomePending
		default:
			return OutcomeFailed
		}
	case "settlement":
		return OutcomeSuccess
	case "pending":
		return OutcomePending
	case "deny", "failure":
		return OutcomeFailed
	case "cancel":
		return OutcomeCancelled
	case "expire":
		return OutcomeExpired
	default:
		return OutcomeUnknown
	}
}
