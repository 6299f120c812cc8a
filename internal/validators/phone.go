package validators

// IsPhoneValid accepts exactly ten digits, the national numbering plan the
// front desk uses.
func IsPhoneValid(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
