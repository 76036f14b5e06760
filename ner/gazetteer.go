package ner

var defaultGazetteer = map[string]string{
	"john kerry":     Person,
	"barack obama":   Person,
	"angela merkel":  Person,
	"u.s.":           Location,
	"u.k.":           Location,
	"united states":  Location,
	"united kingdom": Location,
	"new york":       Location,
	"new york city":  Location,
	"los angeles":    Location,
	"san francisco":  Location,
	"washington":     Location,
	"london":         Location,
	"paris":          Location,
	"berlin":         Location,
	"madrid":         Location,
	"rome":           Location,
	"tokyo":          Location,
	"china":          Location,
	"france":         Location,
	"germany":        Location,
	"spain":          Location,
	"italy":          Location,
	"japan":          Location,
	"russia":         Location,
	"europe":         Location,
	"asia":           Location,
	"africa":         Location,
	"america":        Location,
	"california":     Location,
	"texas":          Location,
	"boston":         Location,
	"united nations": Organization,
	"u.n.":           Organization,
	"european union": Organization,
	"nato":           Organization,
	"google":         Organization,
	"microsoft":      Organization,
	"reuters":        Organization,
	"congress":       Organization,
	"senate":         Organization,
	"christmas":      Date,
	"january":        Date,
	"february":       Date,
	"march":          Date,
	"april":          Date,
	"may":            Date,
	"june":           Date,
	"july":           Date,
	"august":         Date,
	"september":      Date,
	"october":        Date,
	"november":       Date,
	"december":       Date,
	"monday":         Date,
	"tuesday":        Date,
	"wednesday":      Date,
	"thursday":       Date,
	"friday":         Date,
	"saturday":       Date,
	"sunday":         Date,
	"english":        Misc,
	"french":         Misc,
	"german":         Misc,
	"american":       Misc,
	"european":       Misc,
}

var months = map[string]bool{
	"january": true, "february": true, "march": true, "april": true, "may": true,
	"june": true, "july": true, "august": true, "september": true, "october": true,
	"november": true, "december": true,
	"jan.": true, "feb.": true, "mar.": true, "apr.": true, "jun.": true,
	"jul.": true, "aug.": true, "sep.": true, "sept.": true, "oct.": true,
	"nov.": true, "dec.": true,
}

var titles = map[string]bool{
	"dr.": true, "mr.": true, "mrs.": true, "ms.": true, "prof.": true,
	"sen.": true, "gov.": true, "gen.": true, "col.": true, "capt.": true,
	"president": true, "senator": true, "minister": true, "judge": true,
	"sir": true, "lady": true, "king": true, "queen": true,
}

var givenNames = map[string]bool{
	"john": true, "mary": true, "james": true, "robert": true, "michael": true,
	"david": true, "william": true, "richard": true, "peter": true, "paul": true,
	"susan": true, "linda": true, "elizabeth": true, "sarah": true, "anna": true,
	"maria": true, "george": true, "thomas": true,
}

var orgSuffixes = map[string]bool{
	"inc.": true, "corp.": true, "ltd.": true, "co.": true, "llc": true,
	"plc": true, "gmbh": true, "university": true, "bank": true, "group": true,
	"institute": true, "association": true, "foundation": true,
}
