package choiceserver

type seedCountry struct {
	code   string
	name   string
	cities []string
}

var seedCountries = []seedCountry{
	{"fr", "France", []string{"Paris", "Lyon", "Lille", "Lorient", "Marseille", "Lens", "Nantes"}},
	{"fi", "Finland", []string{"Helsinki", "Espoo", "Tampere", "Lahti"}},
	{"fj", "Fiji", []string{"Suva", "Lautoka", "Nadi"}},
	{"de", "Germany", []string{"Berlin", "Hamburg", "Leipzig", "Munich", "Lübeck"}},
	{"es", "Spain", []string{"Madrid", "Barcelona", "Málaga", "Lleida", "León"}},
	{"it", "Italy", []string{"Rome", "Milan", "Lecce", "Livorno", "Naples"}},
	{"gb", "United Kingdom", []string{"London", "Leeds", "Liverpool", "Manchester"}},
	{"us", "United States", []string{"New York", "Los Angeles", "Louisville", "Chicago"}},
	{"ua", "Ukraine", []string{"Kyiv", "Lviv", "Odesa"}},
	{"ug", "Uganda", []string{"Kampala", "Entebbe", "Lira"}},
	{"pt", "Portugal", []string{"Lisbon", "Porto", "Leiria"}},
	{"pl", "Poland", []string{"Warsaw", "Łódź", "Lublin", "Kraków"}},
	{"be", "Belgium", []string{"Brussels", "Liège", "Leuven", "Antwerp"}},
	{"nl", "Netherlands", []string{"Amsterdam", "Leiden", "Rotterdam"}},
	{"ca", "Canada", []string{"Toronto", "Montreal", "London", "Laval"}},
}
