package privacy

import "strings"

// MaskMSISDN masks a subscriber number showing only the last 4 digits.
// Example: "+31612345678" -> "+*******5678"
func MaskMSISDN(msisdn string) string {
	if msisdn == "" {
		return ""
	}

	if strings.HasPrefix(msisdn, "+") {
		if len(msisdn) <= 5 {
			return "+" + strings.Repeat("*", len(msisdn)-1)
		}
		return "+" + strings.Repeat("*", len(msisdn)-5) + msisdn[len(msisdn)-4:]
	}

	if len(msisdn) <= 4 {
		return strings.Repeat("*", len(msisdn))
	}
	return strings.Repeat("*", len(msisdn)-4) + msisdn[len(msisdn)-4:]
}

// MaskEmailAddress masks the local part of an email address.
// Example: "jane.doe@example.com" -> "j*******@example.com"
func MaskEmailAddress(address string) string {
	at := strings.Index(address, "@")
	if at <= 0 {
		return address
	}

	local := address[:at]
	if len(local) == 1 {
		return "*" + address[at:]
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + address[at:]
}

// MaskRecipient masks a platform destination, which is an email address or
// an MSISDN depending on the channel
func MaskRecipient(recipient string) string {
	if strings.Contains(recipient, "@") {
		return MaskEmailAddress(recipient)
	}
	return MaskMSISDN(recipient)
}

// MaskAccessKey masks a credential showing only the last 4 characters
func MaskAccessKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
