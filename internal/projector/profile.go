package projector

import (
	"github.com/rakapratama/permit-extractor/constants"
)

// SplitRule derives a column from a combined source field, e.g. splitting
// "Place & Date of Birth" on the comma into place and date parts.
type SplitRule struct {
	Sources   []string // candidate combined-field keys, tried in order
	Separator string
	Index     int // which part to take; out-of-range resolves to nothing
}

// ColumnRule resolves one display column from an extraction record. Keys are
// tried in priority order (the service is not consistent about field names;
// Indonesian and English variants coexist), then the split transform, then
// the placeholder.
type ColumnRule struct {
	Header string
	Keys   []string
	Split  *SplitRule
}

// Profile is the column-resolution table for one document type. Columns is
// the display set; Extra holds export-only columns. Profiles are defined at
// process start and never mutated.
type Profile struct {
	Type    constants.DocumentType
	Columns []ColumnRule
	Extra   []ColumnRule
}

var (
	splitPlace = &SplitRule{
		Sources:   []string{"Place & Date of Birth", "Tempat/Tgl Lahir", "Tempat & Tanggal Lahir"},
		Separator: ",",
		Index:     0,
	}
	splitDate = &SplitRule{
		Sources:   []string{"Place & Date of Birth", "Tempat/Tgl Lahir", "Tempat & Tanggal Lahir"},
		Separator: ",",
		Index:     1,
	}
)

func nameCol() ColumnRule {
	return ColumnRule{Header: "Name", Keys: []string{"Name", "Nama"}}
}

func placeOfBirthCol() ColumnRule {
	return ColumnRule{Header: "Place of Birth", Keys: []string{"Place of Birth", "Tempat Lahir"}, Split: splitPlace}
}

func dateOfBirthCol() ColumnRule {
	return ColumnRule{Header: "Date of Birth", Keys: []string{"Date of Birth", "Tanggal Lahir"}, Split: splitDate}
}

func passportNoCol() ColumnRule {
	return ColumnRule{Header: "Passport No", Keys: []string{"Passport No", "Nomor Paspor", "No. Paspor", "Passport Number"}}
}

func passportExpiryCol() ColumnRule {
	return ColumnRule{Header: "Passport Expiry", Keys: []string{"Passport Expiry", "Passport Expiry Date", "Tanggal Habis Berlaku Paspor"}}
}

func dateIssueCol() ColumnRule {
	return ColumnRule{Header: "Date Issue", Keys: []string{"Date Issue", "Date of Issue", "Tanggal Penerbitan", "Tanggal Pengeluaran"}}
}

func nationalityCol() ColumnRule {
	return ColumnRule{Header: "Nationality", Keys: []string{"Nationality", "Kewarganegaraan"}}
}

// defaultProfile serves unrecognized tags; ResolveColumns must stay total.
var defaultProfile = Profile{
	Columns: []ColumnRule{
		nameCol(),
		placeOfBirthCol(),
		dateOfBirthCol(),
		passportNoCol(),
		passportExpiryCol(),
		dateIssueCol(),
		{Header: "Document Type", Keys: []string{"Document Type", "Jenis Dokumen"}},
	},
}

var profiles = map[constants.DocumentType]Profile{
	constants.SKTT: {
		Type: constants.SKTT,
		Columns: []ColumnRule{
			{Header: "NIK", Keys: []string{"NIK", "Nomor Induk Kependudukan"}},
			nameCol(),
			placeOfBirthCol(),
			dateOfBirthCol(),
			{Header: "Gender", Keys: []string{"Gender", "Jenis Kelamin"}},
			nationalityCol(),
			passportNoCol(),
			{Header: "Valid Until", Keys: []string{"Valid Until", "Berlaku Hingga"}},
			dateIssueCol(),
		},
		Extra: []ColumnRule{
			{Header: "Address", Keys: []string{"Address", "Alamat"}},
		},
	},
	constants.EVLN: {
		Type: constants.EVLN,
		Columns: []ColumnRule{
			nameCol(),
			placeOfBirthCol(),
			dateOfBirthCol(),
			passportNoCol(),
			passportExpiryCol(),
			{Header: "Visa Number", Keys: []string{"Visa Number", "Nomor Visa"}},
			dateIssueCol(),
		},
	},
	constants.ITAS: {
		Type: constants.ITAS,
		Columns: []ColumnRule{
			nameCol(),
			{Header: "Permit Number", Keys: []string{"Permit Number", "Nomor Izin", "KITAS Number"}},
			placeOfBirthCol(),
			dateOfBirthCol(),
			passportNoCol(),
			passportExpiryCol(),
			nationalityCol(),
			{Header: "Occupation", Keys: []string{"Occupation", "Jabatan", "Pekerjaan"}},
			{Header: "Valid Until", Keys: []string{"Valid Until", "Berlaku Hingga"}},
			dateIssueCol(),
		},
		Extra: []ColumnRule{
			{Header: "Address", Keys: []string{"Address", "Alamat"}},
			{Header: "Guarantor", Keys: []string{"Guarantor", "Penjamin"}},
		},
	},
	constants.ITK: {
		Type: constants.ITK,
		Columns: []ColumnRule{
			nameCol(),
			{Header: "Permit Number", Keys: []string{"Permit Number", "Nomor Izin", "ITK Number"}},
			placeOfBirthCol(),
			dateOfBirthCol(),
			passportNoCol(),
			passportExpiryCol(),
			nationalityCol(),
			{Header: "Valid Until", Keys: []string{"Valid Until", "Berlaku Hingga"}},
			dateIssueCol(),
		},
	},
	constants.Notifikasi: {
		Type: constants.Notifikasi,
		Columns: []ColumnRule{
			{Header: "Decision Number", Keys: []string{"Decision Number", "Nomor Keputusan"}},
			{Header: "Name", Keys: []string{"Name", "Nama TKA", "Nama"}},
			placeOfBirthCol(),
			dateOfBirthCol(),
			passportNoCol(),
			nationalityCol(),
			{Header: "Position", Keys: []string{"Position", "Jabatan"}},
			{Header: "Work Location", Keys: []string{"Work Location", "Lokasi Kerja"}},
			{Header: "Valid Period", Keys: []string{"Valid Period", "Berlaku"}},
		},
	},
	constants.DKPTKA: {
		Type: constants.DKPTKA,
		Columns: []ColumnRule{
			{Header: "Employer", Keys: []string{"Employer", "Nama Pemberi Kerja"}},
			{Header: "Worker Name", Keys: []string{"Worker Name", "Nama TKA", "Name"}},
			placeOfBirthCol(),
			dateOfBirthCol(),
			passportNoCol(),
			nationalityCol(),
			{Header: "Position", Keys: []string{"Position", "Jabatan"}},
			{Header: "Billing Code", Keys: []string{"Billing Code", "Kode Billing"}},
			{Header: "Amount", Keys: []string{"Amount", "Jumlah", "DKPTKA Payment"}},
		},
		Extra: []ColumnRule{
			{Header: "Phone", Keys: []string{"Phone", "No Telepon"}},
			{Header: "Email", Keys: []string{"Email"}},
		},
	},
}

// profileFor returns the profile for a tag, or the generic default for
// anything unrecognized. Total: never fails.
func profileFor(dt constants.DocumentType) Profile {
	if p, ok := profiles[dt]; ok {
		return p
	}
	return defaultProfile
}
