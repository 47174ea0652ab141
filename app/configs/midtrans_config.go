package configs

import (
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

var MidtransSnapClient snap.Client

func InitMidtransClient() {
	env := midtrans.Sandbox
	if LoadENV.AppEnv == "production" {
		env = midtrans.Production
	}

	MidtransSnapClient.New(LoadENV.MIDTRANS_SERVER_KEY, env)
	midtrans.ClientKey = LoadENV.MIDTRANS_CLIENT_KEY
	midtrans.ServerKey = LoadENV.MIDTRANS_SERVER_KEY
	midtrans.Environment = env

	log.Println("Midtrans Snap client initialized.")
}

func GetMidtransCoreAPIClient() coreapi.Client {
	env := midtrans.Sandbox
	if LoadENV.AppEnv == "production" {
		env = midtrans.Production
	}

	var client coreapi.Client
	client.New(LoadENV.MIDTRANS_SERVER_KEY, env)
	return client
}
