package models

import "strings"

// Specialties lists the doctor specialties offered on the platform.
var Specialties = []string{
	"General Medicine",
	"Cardiology",
	"Dermatology",
	"Endocrinology",
	"Gastroenterology",
	"Neurology",
	"Obstetrics & Gynecology",
	"Oncology",
	"Ophthalmology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
	"Pulmonology",
	"Radiology",
	"Urology",
	"Other",
}

// CanonicalSpecialty returns the listed spelling of name, ignoring case.
func CanonicalSpecialty(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Specialties {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}
