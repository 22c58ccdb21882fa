package schema

// Workspace property names of the company database.
const (
	CompanyName     = "Nimi"
	CompanyRegcode  = "Registrikood"
	CompanyAddress  = "Aadress"
	CompanyCounty   = "Maakond"
	CompanyEmail    = "E-post"
	CompanyPhone    = "Tel. nr"
	CompanyWebsite  = "Veebileht"
	CompanyLinkedIn = "LinkedIn"
	CompanyActivity = "Põhitegevus"
	CompanySection  = "Tegevusvaldkond"

	// CompanyStatusField is the side-channel status property written after
	// autofill runs. It is not a managed field and never merged.
	CompanyStatusField = "Auto-fill Status"
)

// Placeholder sentinels, one per conditional field. The exact strings are
// load-bearing: existing pages carry them, and the merge policy must keep
// recognizing them as "looked but did not find".
const (
	PlaceholderEmail    = "E-maili ei leitud."
	PlaceholderPhone    = "Telefoni numbrit ei leitud."
	PlaceholderWebsite  = "Veebilehte ei leitud."
	PlaceholderLinkedIn = "LinkedIn-i ei leitud."
)

// Company declares the managed field set of the company database in stable
// report order. Registry-owned fields overwrite unconditionally; contact
// channels are conditional so manual edits survive a re-sync.
func Company() *Schema {
	return New([]Field{
		{Name: CompanyName, Kind: KindTitle, Label: "Nimi (Name)"},
		{Name: CompanyRegcode, Kind: KindNumber, Label: "Registrikood (Registry Code)"},
		{Name: CompanyAddress, Kind: KindRichText, Label: "Aadress (Address)", Track: true},
		{Name: CompanyCounty, Kind: KindMultiSelect, Label: "Maakond (County)", Track: true},
		{Name: CompanyEmail, Kind: KindEmail, Label: "E-post (Email)", Placeholder: PlaceholderEmail, Conditional: true, Track: true},
		{Name: CompanyPhone, Kind: KindPhone, Label: "Tel. nr (Phone No)", Placeholder: PlaceholderPhone, Conditional: true, Track: true},
		{Name: CompanyWebsite, Kind: KindURL, Label: "Veebileht (Website)", Placeholder: PlaceholderWebsite, Conditional: true, Track: true},
		{Name: CompanyLinkedIn, Kind: KindURL, Label: "LinkedIn", Placeholder: PlaceholderLinkedIn, Conditional: true, Track: true},
		{Name: CompanyActivity, Kind: KindRichText, Label: "Põhitegevus (Main Activity)", Track: true},
		{Name: CompanySection, Kind: KindMultiSelect, Label: "Tegevusvaldkond (Industry Section)", Track: true},
	})
}

// Workspace property names of the contacts database. The title property
// holds the role; the person's name is a plain rich_text field, matching
// the layout the contacts database has always had.
const (
	ContactRole    = "Name"
	ContactPerson  = "Nimi"
	ContactEmail   = "Email"
	ContactPhone   = "Telefoninumber"
	ContactCompany = "Ettevõte"
	ContactStatus  = "Status"
)

// Contact declares the field set of the contacts database.
func Contact() *Schema {
	return New([]Field{
		{Name: ContactRole, Kind: KindTitle, Label: "Roll (Role)"},
		{Name: ContactPerson, Kind: KindRichText, Label: "Nimi (Name)"},
		{Name: ContactEmail, Kind: KindEmail, Label: "Email"},
		{Name: ContactPhone, Kind: KindPhone, Label: "Telefoninumber (Phone)"},
		{Name: ContactCompany, Kind: KindRelation, Label: "Ettevõte (Company)"},
		{Name: ContactStatus, Kind: KindSelect, Label: "Status"},
	})
}
