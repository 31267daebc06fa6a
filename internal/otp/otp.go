package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"
)

// Generate returns a 6-digit one-time code.
func Generate() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// reasonable fallback for a security code.
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// Sender delivers a one-time code to a phone number. Delivery happens
// outside any database transaction; a failed send never blocks
// registration.
type Sender interface {
	Send(phoneNumber, code string) error
}

// ConsoleSender logs the code instead of dispatching an SMS. It stands in
// for a real gateway in development and tests.
type ConsoleSender struct{}

func (ConsoleSender) Send(phoneNumber, code string) error {
	logrus.WithFields(logrus.Fields{
		"phone_number": phoneNumber,
		"otp":          code,
	}).Info("OTP generated (console sender)")
	return nil
}
