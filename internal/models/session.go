package models

import "time"

// DepositSession is the server-held context behind an opaque reference
// handed to the deposit-details popup. It lives only in redis with a short
// TTL; the popup exchanges the reference for this context over an
// authenticated request instead of receiving credentials in the URL.
type DepositSession struct {
	UserID            uint          `json:"userId"`
	PaymentMethodID   uint          `json:"paymentMethodId"`
	Channel           string        `json:"channel"`
	Amount            float64       `json:"amount"`
	MethodName        string        `json:"methodName"`
	MethodNameBD      string        `json:"methodNameBD"`
	MethodImage       string        `json:"methodImage"`
	AgentWalletNumber string        `json:"agentWalletNumber"`
	UserInputs        UserInputList `json:"userInputs"`
	CreatedAt         time.Time     `json:"createdAt"`
}
