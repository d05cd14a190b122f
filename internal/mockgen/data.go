package mockgen

// Word lists backing the text generators. Values are en-US flavored.

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "minim", "veniam", "quis",
	"nostrud", "exercitation", "ullamco", "laboris", "nisi", "aliquip",
	"commodo", "consequat", "duis", "aute", "irure", "voluptate", "velit",
}

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Daniel",
	"Nancy", "Matthew", "Lisa", "Anthony", "Betty", "Mark", "Sandra",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Clark", "Lewis",
}

var handleWords = []string{
	"pixel", "rocket", "shadow", "tiger", "nova", "echo", "falcon", "maple",
	"river", "cosmic", "silver", "quantum", "lucky", "frost", "ember", "orbit",
}

var emailDomains = []string{
	"example.com", "example.org", "example.net", "mail.test", "mock.io",
}

var companyPrefixes = []string{
	"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne", "Cyberdyne",
	"Tyrell", "Soylent", "Hooli", "Vandelay", "Wonka", "Aperture", "Massive",
}

var companySuffixes = []string{
	"Inc", "LLC", "Corp", "Group", "Labs", "Industries", "Holdings", "Systems",
}

var streetNames = []string{
	"Main", "Oak", "Pine", "Maple", "Cedar", "Elm", "Washington", "Lake",
	"Hill", "Park", "Sunset", "Highland", "Church", "Spring", "Ridge",
}

var streetSuffixes = []string{
	"St", "Ave", "Blvd", "Rd", "Ln", "Dr", "Way", "Ct",
}

var cities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Seattle",
	"Denver", "Boston", "Austin", "Portland", "Atlanta", "Miami", "Detroit",
	"San Diego", "Nashville", "Minneapolis",
}

var countries = []string{
	"United States", "Canada", "Mexico", "United Kingdom", "Germany",
	"France", "Spain", "Italy", "Netherlands", "Sweden", "Japan",
	"Australia", "Brazil", "India", "South Africa", "New Zealand",
}

var topLevelDomains = []string{
	"com", "org", "net", "io", "dev", "app",
}
