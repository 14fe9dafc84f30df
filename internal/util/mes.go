package util

import "time"

// ParseMesAplicacion parses the billing period date the API receives
// ("YYYY-MM-DD", conventionally the first of the month) and normalizes it to
// the first day of that month.
func ParseMesAplicacion(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// Periodo formats the receipt-number prefix for a date: YYYYMM.
func Periodo(t time.Time) string {
	return t.Format("200601")
}

// PrimerDiaDelMes truncates a date to the first of its month.
func PrimerDiaDelMes(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MesAnterior returns the first day of the month before t.
func MesAnterior(t time.Time) time.Time {
	return PrimerDiaDelMes(t).AddDate(0, -1, 0)
}
