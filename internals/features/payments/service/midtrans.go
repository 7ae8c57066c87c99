package service

import (
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// SnapGateway is the slice of the Midtrans Snap client the ledger uses.
type SnapGateway interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// InitMidtrans builds the Snap client. Returns nil when no server key is
// configured; the ledger then refuses gateway-backed payments.
func InitMidtrans(serverKey string, useProduction bool) SnapGateway {
	if serverKey == "" {
		log.Println("[WARN] Midtrans server key missing, gateway payments disabled")
		return nil
	}

	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}

	client := snap.Client{}
	client.New(serverKey, env)
	log.Println("✅ Midtrans Snap client ready")
	return &client
}
