package seeders

import "certificate-system/internal/certificates"

type demoCertificate struct {
	Reference    string
	Kind         certificates.Kind
	ClientName   string
	ClientEmail  string
	SiteAddress  string
	SitePostcode string
	// catalog record id to auto-fill from; empty leaves the equipment section blank
	EquipmentID string
	Extra       certificates.Patch
}

var demoCertificatesData = []demoCertificate{
	{
		Reference:    "FA-DEMO-000001",
		Kind:         certificates.KindFireAlarm,
		ClientName:   "Riverside Care Home",
		ClientEmail:  "facilities@riverside-care.example",
		SiteAddress:  "12 Riverside Walk, Leeds",
		SitePostcode: "LS1 4DY",
		EquipmentID:  "adv-mxpro5-4l",
		Extra: certificates.Patch{
			{Field: "detectors_tested", Value: 148},
			{Field: "inspector_name", Value: "R. Jones"},
		},
	},
	{
		Reference:    "FA-DEMO-000002",
		Kind:         certificates.KindFireAlarm,
		ClientName:   "Mill Lane Primary School",
		SiteAddress:  "Mill Lane, Bradford",
		SitePostcode: "BD1 1AA",
		EquipmentID:  "kentec-syncro-as",
	},
	{
		Reference:    "PV-DEMO-000001",
		Kind:         certificates.KindSolarPV,
		ClientName:   "A. Patel",
		ClientEmail:  "a.patel@example.com",
		SiteAddress:  "4 Mill Lane, Leeds",
		SitePostcode: "LS6 2AB",
		EquipmentID:  "jinko-tiger-neo-440",
	},
}
