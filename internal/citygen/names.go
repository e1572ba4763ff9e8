package citygen

// Static pools for synthetic citizens and locations. Names are combined at
// random, so the pools stay small.

var firstNames = []string{
	"John", "Sarah", "Michael", "Emma", "David", "Lisa", "James", "Anna",
	"Robert", "Maria", "William", "Elena", "Thomas", "Sofia", "Daniel",
	"Olivia", "Marcus", "Nina", "Victor", "Clara", "Henry", "Iris",
	"Samuel", "Ruth", "Leon", "Vera", "Oscar", "Dana", "Felix", "Mona",
}

var lastNames = []string{
	"Anderton", "Witwer", "Hineman", "Burgess", "Marks", "Crow", "Lively",
	"Fletcher", "Donovan", "Reyes", "Kaplan", "Moreno", "Walsh", "Becker",
	"Santos", "Novak", "Lindqvist", "Okafor", "Tanaka", "Petrov",
}

var jobs = []string{
	"Teacher", "Engineer", "Clerk", "Nurse", "Driver", "Chef", "Analyst",
	"Mechanic", "Cashier", "Guard", "Librarian", "Electrician", "Barista",
	"Accountant", "Courier", "Janitor", "Pharmacist", "Welder",
	"Dispatcher", "Unemployed",
}

var streets = []string{
	"Precinct Ave", "Halcyon St", "Meridian Blvd", "Cypress Lane",
	"Harbor Rd", "Juniper Way", "Sentinel Dr", "Arcadia Pl",
	"Foundry St", "Crescent Ct",
}

// locationNamePrefixes gives each location a street-like flavor per type.
var locationNamePrefixes = map[string][]string{
	"Bank":            {"First National", "Union", "Meridian", "Cascade"},
	"Jewelry Store":   {"Golden Hour", "Carat", "Lumina", "Regent"},
	"Subway Station":  {"North", "Central", "Harbor", "Eastside"},
	"Dark Alley":      {"Foundry", "Dockside", "Cannery", "Backlot"},
	"Park":            {"Arcadia", "Riverside", "Juniper", "Monument"},
	"Cafe":            {"Corner", "Daily Grind", "Halcyon", "Beacon"},
	"Apartment Block": {"Crescent", "Sentinel", "Cypress", "Harborview"},
	"Shopping Mall":   {"Meridian", "Galleria", "Northgate", "Pavilion"},
	"Gas Station":     {"Route 9", "Interchange", "Milepost", "Junction"},
	"Warehouse":       {"Pier 4", "Freightyard", "Depot 12", "Coldstore"},
}
