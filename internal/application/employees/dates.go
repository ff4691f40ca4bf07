package employees

import "time"

const dateLayout = "2006-01-02"

// SecondUniformDate calcula la fecha de entrega del segundo uniforme: quince
// días después del ingreso, ajustada al corte de nómina más próximo (día 15 o
// día 30, o el último día del mes cuando éste no llega a 30).
func SecondUniformDate(hire time.Time) time.Time {
	d := hire.AddDate(0, 0, 15)
	if d.Day() <= 15 {
		return time.Date(d.Year(), d.Month(), 15, 0, 0, 0, 0, d.Location())
	}
	day := 30
	if last := lastDayOfMonth(d); last < day {
		day = last
	}
	return time.Date(d.Year(), d.Month(), day, 0, 0, 0, 0, d.Location())
}

// NextRenewalDate calcula la siguiente renovación de uniforme: seis meses
// después de la fecha base, clampando al último día del mes destino (31 de
// agosto + 6 meses es 28/29 de febrero, no 2 de marzo).
func NextRenewalDate(base time.Time) time.Time {
	y, m := base.Year(), int(base.Month())+6
	for m > 12 {
		m -= 12
		y++
	}
	day := base.Day()
	if last := lastDayOfMonth(time.Date(y, time.Month(m), 1, 0, 0, 0, 0, base.Location())); last < day {
		day = last
	}
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, base.Location())
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
