package eps

import "github.com/famsalud/famsalud/backend/api/internal/models"

// DefaultProviders is the catalogue loaded by cmd/seed.
func DefaultProviders() []models.EpsProvider {
	return []models.EpsProvider{
		{Name: "Salud Total EPS - Virrey Solis", Code: "EPS002", ParserKey: "salud_total"},
		{Name: "Nueva EPS", Code: "EPS037", ParserKey: "nueva_eps"},
		{Name: "EPS Sanitas", Code: "EPS005", ParserKey: "sanitas"},
		{Name: "EPS Sura", Code: "EPS010", ParserKey: "sura"},
		{Name: "Compensar EPS", Code: "EPS008", ParserKey: "compensar"},
		{Name: "Famisanar EPS", Code: "EPS017", ParserKey: "famisanar"},
		{Name: "Coosalud EPS", Code: "EPS019", ParserKey: "coosalud"},
		{Name: "Mutual Ser EPS", Code: "ESS024", ParserKey: "mutual_ser"},
		{Name: "Aliansalud EPS", Code: "EPS001", ParserKey: "aliansalud"},
		{Name: "Capital Salud EPS", Code: "EPS039", ParserKey: "capital_salud"},
	}
}
