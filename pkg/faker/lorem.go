package faker

// Fixed vocabulary for generated values. Selection is always seeded from the
// component and prop names, so the same document generates the same values
// on every run.

var loremWords = []string{
	"amber", "harbor", "meadow", "signal", "quiet", "velvet", "cedar",
	"morning", "drift", "lantern", "summit", "willow", "ember", "tide",
	"garden", "copper", "field", "north", "paper", "stone",
}

var loremSentences = []string{
	"A calm start that settles into a steady rhythm.",
	"Everything in its place, nothing left to chance.",
	"Small details carry the weight of the whole.",
	"Made to hold up under daily use.",
	"Clear intent, quietly executed.",
	"The long way around is sometimes the shortest path.",
}

var firstNames = []string{
	"Maya", "Jonas", "Priya", "Leo", "Amara", "Felix", "Nora", "Diego",
	"Ines", "Theo", "Lena", "Marcus",
}

var lastNames = []string{
	"Chen", "Alvarez", "Okafor", "Lindqvist", "Moreau", "Tanaka",
	"Kowalski", "Haddad", "Romano", "Iversen",
}

var streets = []string{
	"Harbor Lane", "Cedar Street", "Willow Avenue", "Summit Road",
	"Garden Walk", "Copper Court",
}

var cities = []string{
	"Portland", "Lyon", "Aarhus", "Kyoto", "Valencia", "Wellington",
}

var colorPalette = []string{
	"#2563eb", "#16a34a", "#dc2626", "#d97706", "#7c3aed", "#0891b2",
}

var urlSlugs = []string{
	"getting-started", "pricing", "changelog", "docs", "about", "blog",
}
