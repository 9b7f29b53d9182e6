package i18n

import "golang.org/x/text/language"

// French month labels are the first three letters of the month, capitalized,
// so June and July both read "Jui".
var translations = map[language.Tag]map[string]string{
	language.French: {
		"month.1":         "Jan",
		"month.2":         "Fév",
		"month.3":         "Mar",
		"month.4":         "Avr",
		"month.5":         "Mai",
		"month.6":         "Jui",
		"month.7":         "Jui",
		"month.8":         "Aoû",
		"month.9":         "Sep",
		"month.10":        "Oct",
		"month.11":        "Nov",
		"month.12":        "Déc",
		"status.pending":  "En attente",
		"status.accepted": "Accepté",
		"status.refused":  "Refusé",
	},
	language.English: {
		"month.1":         "Jan",
		"month.2":         "Feb",
		"month.3":         "Mar",
		"month.4":         "Apr",
		"month.5":         "May",
		"month.6":         "Jun",
		"month.7":         "Jul",
		"month.8":         "Aug",
		"month.9":         "Sep",
		"month.10":        "Oct",
		"month.11":        "Nov",
		"month.12":        "Dec",
		"status.pending":  "Pending",
		"status.accepted": "Accepted",
		"status.refused":  "Refused",
	},
}
