package temperature

const (
	RegionAmericas = "Americas"
	RegionEMEA     = "EMEA"
	RegionAsia     = "Asia"
)

var defaultRegions = []Region{
	{
		Name: RegionAmericas,
		Countries: []string{
			"Aruba", "St Kitts and Nevis", "Cayman Islands", "Antigua and Barbuda", "Samoa", "American Samoa", "St Lucia", "Virgin Islands",
			"Dominica", "Trinidad and Tobago", "Suriname", "Barbados", "Grenada", "Guyana", "St Vincent and the Grenadines", "Jamaica",
			"Belize", "Nicaragua", "Cuba", "Bahamas", "Venezuela", "Panama", "Brazil", "El Salvador", "Puerto Rico", "Haiti", "Dominican Republic",
			"Colombia", "Honduras", "Costa Rica", "Paraguay", "Guatemala", "Mexico", "Bolivia", "Ecuador", "Peru", "Uruguay", "Argentina",
			"United States", "Chile", "Canada", "Greenland",
		},
	},
	{
		Name: RegionEMEA,
		Countries: []string{
			"Burkina Faso", "Mali", "Senegal", "Mauritania", "Djibouti", "Gambia", "Benin", "Ghana", "Togo", "Sudan", "Nigeria", "Seychelles",
			"Chad", "Ivory Coast", "Somalia", "Eritrea", "Sierra Leone", "Guinea", "Liberia", "Gabon", "Republic of the Congo", "Kenya",
			"Mozambique", "Cameroon", "Equatorial Guinea", "Sao Tome and Principe", "Congo", "Comoros", "Algeria", "Ethiopia", "Egypt",
			"Mauritius", "Libya", "Malawi", "Uganda", "Madagascar", "Tanzania", "Cape Verde", "Botswana", "Zimbabwe", "Zambia", "Angola",
			"Tunisia", "Swaziland", "Israel", "Namibia", "Malta", "Palestine", "Jordan", "Burundi", "Cyprus", "Syria", "Iran", "Morocco",
			"South Africa", "Rwanda", "Turkmenistan", "Portugal", "Lebanon", "Greece", "Spain", "Uzbekistan", "Italy", "Monaco", "San Marino",
			"Albania", "Croatia", "Hungary", "Serbia", "Bulgaria", "Lesotho", "Turkey", "Moldova", "France", "Macedonia", "Romania",
			"Bosnia and Herzegovina", "Belgium", "Netherlands", "Montenegro", "Slovenia", "Ukraine", "Germany", "Luxembourg", "Slovakia",
			"Poland", "Ireland", "Denmark", "Isle of Man", "United Kingdom", "Belarus", "Austria", "Lithuania", "Andorra", "Liechtenstein",
			"Armenia", "Latvia", "Kazakhstan", "Switzerland", "Estonia", "Faroe Islands", "Tajikistan", "Sweden", "Finland", "Kyrgyzstan",
			"Norway", "Russia",
		},
	},
	{
		Name: RegionAsia,
		Countries: []string{
			"Qatar", "Marshall Islands", "United Arab Emirates", "Bahrain", "Singapore", "Maldives", "Cambodia", "Oman", "Niger", "Micronesia",
			"Sri Lanka", "Kiribati", "Palau", "Thailand", "Northern Mariana Islands", "Philippines", "Malaysia", "Indonesia", "Saudi Arabia",
			"Bangladesh", "Yemen", "Solomon Islands", "Tonga", "Vietnam", "India", "Mayotte", "Fiji", "Laos", "Papua New Guinea", "Vanuatu",
			"French Polynesia", "Myanmar", "Hong Kong", "Macau", "Iraq", "New Caledonia", "Pakistan", "Taiwan", "Nepal", "Afghanistan",
			"Azerbaijan", "South Korea", "Japan", "New Zealand", "Bhutan", "Georgia", "China", "North Korea", "Mongolia", "Iceland",
		},
	},
}

var defaultTable = NewRegionTable(defaultRegions...)

// DefaultRegionTable встроенная таблица Americas, EMEA, Asia.
func DefaultRegionTable() *RegionTable {
	return defaultTable
}
