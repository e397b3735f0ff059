package screen

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jwalitptl/hospital-console/internal/model"
)

var printer = message.NewPrinter(language.English)

// money renders an amount the way the dashboard cards show it: "$1,200" or
// "$280.5".
func money(v model.Cents) string {
	return printer.Sprintf("$%v", number.Decimal(v.Dollars(), number.MaxFractionDigits(2)))
}

func count(n int) string {
	return printer.Sprintf("%d", n)
}

func percent(part, whole float64) string {
	if whole <= 0 {
		return "0%"
	}
	return strconv.Itoa(int(math.Round(part/whole*100))) + "%"
}

func branchLabel(b model.Branch) string {
	switch b {
	case model.BranchCentral:
		return "Central"
	case model.BranchA:
		return "Branch A"
	case model.BranchB:
		return "Branch B"
	default:
		return string(b)
	}
}

func badge(status string) string {
	return strings.ToLower(strings.ReplaceAll(status, " ", "-"))
}
