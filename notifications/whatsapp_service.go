package notifications

import (
	"log"
	"strings"
	"unicode"

	config "github.com/engiversee/platform/configs"
)

// WhatsApp notifications are prepared and logged rather than transmitted; a
// WhatsApp Business API account is needed before these can actually go out.
// Callers treat these as best-effort and never fail a request on them.

func SendWelcomeMessage(name, whatsappNumber string) {
	groupLink := config.Config("WHATSAPP_GROUP_INVITE_LINK")
	log.Printf("Sending WhatsApp welcome message: to=%s message=%q",
		whatsappNumber,
		"Hi "+name+", welcome to Engiversee! Join our community group: "+groupLink)
}

func SendVerificationMessage(name, whatsappNumber, verificationLink string) {
	log.Printf("Sending WhatsApp verification message: to=%s message=%q",
		whatsappNumber,
		"Hi "+name+", please verify your email by clicking this link: "+verificationLink+
			". This link will expire in 24 hours. If you didn't request this, please ignore this message.")
}

const (
	minSubscriberDigits  = 8
	maxSubscriberDigits  = 15
	maxCountryCodeDigits = 4
)

// ValidateWhatsAppNumber accepts numbers written with a 1-4 digit country
// code followed by 8-15 subscriber digits. Formatting characters (spaces,
// dashes, a leading +) are ignored; the country code must not start with 0.
func ValidateWhatsAppNumber(number string) bool {
	var digits strings.Builder
	for _, r := range number {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	cleaned := digits.String()
	if cleaned == "" || cleaned[0] == '0' {
		return false
	}

	return len(cleaned) >= 1+minSubscriberDigits && len(cleaned) <= maxCountryCodeDigits+maxSubscriberDigits
}
