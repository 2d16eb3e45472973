package game

// Locations the detective can visit, in the order of the case.
var Locations = []string{
	"Police Station",
	"Crime Scene",
	"Velvet Nightclub",
	"Docks",
	"Roosevelt Hotel",
	"City Morgue",
}

const (
	locationRooseveltHotel = 4
	locationCityMorgue     = 5
)

// Suspect is a person of interest.
type Suspect struct {
	Name       string
	Occupation string
	Location   string
	Responses  []string
	// Note is printed the first time the suspect is interviewed.
	Note string
}

var Suspects = []Suspect{
	{
		Name:       "Tony 'Fingers' Moretti",
		Occupation: "bookie",
		Location:   "Velvet Nightclub",
		Responses: []string{
			"I was playing poker at the Tropicana!",
			"Me? Hurt someone? I'm a lover, not a fighter!",
			"Victoria? She's been acting real jumpy lately...",
		},
	},
	{
		Name:       "Victoria 'Vixen' LaRue",
		Occupation: "club owner",
		Location:   "Velvet Nightclub",
		Responses: []string{
			"I was home alone all night",
			"I don't know what you're implying!",
			"*nervously checks watch*",
		},
	},
	{
		Name:       "Big Louie Scaletta",
		Occupation: "dock worker",
		Location:   "Docks",
		Responses: []string{
			"I was unloading cargo, ask my crew",
			"The victim? Never liked him, but I didn't kill him",
			"Tony's been desperate for money...",
		},
	},
	{
		Name:       "Mickey O'Shea",
		Occupation: "bartender",
		Location:   "Police Station",
		Responses: []string{
			"I was tending bar all night",
			"That gun ain't mine, copper!",
			"Victoria's been dealing under the table...",
		},
	},
	{
		Name:       "Dr. Eleanor Whitmore",
		Occupation: "medical examiner",
		Location:   "City Morgue",
		Responses: []string{
			"Time of death was approximately 11:15pm",
			"The wound shows signs of a close-range shot",
			"Victoria came by earlier asking about sedatives...",
		},
		Note: "(Note: Check tox_report.txt for details on sedatives)",
	},
	{
		Name:       "Sal 'The Tailor' Russo",
		Occupation: "hotel owner",
		Location:   "Roosevelt Hotel",
		Responses: []string{
			"Johnny owed me rent for three months!",
			"Room #47 was his usual spot with... certain ladies",
			"I heard Victoria threatened him last week",
		},
		Note: "(Note: Examine hotel_key.txt about Room #47)",
	},
}

const (
	culprit = 1
	victim  = "Johnny 'Rats' Malone"
	weapon  = "a .38 snubnose"
	motive  = "The victim knew about Victoria's drug operation and was blackmailing her"
)

// Clue is a piece of evidence uncovered by investigating.
type Clue struct {
	// Report is a format string receiving Discovery.
	Report    string
	Discovery string
	// File is written into the case directory when the clue is found.
	File     string
	Contents string
}

var Clues = []Clue{
	{
		Report:    "You find %s under the victim's body",
		Discovery: weapon,
		File:      "ledger.txt",
		Contents:  "Last entry: Owes $5000 to Vixen",
	},
	{
		Report:    "The victim's %s shows suspicious entries",
		Discovery: "ledger (type 'examine ledger')",
		File:      "ballistics.txt",
		Contents:  "Fingerprint match: V. LaRue",
	},
	{
		Report:    "A %s contains damning evidence",
		Discovery: "ballistics report (type 'examine ballistics')",
		File:      "witness.txt",
		Contents:  "10pm: Heard arguing near dumpsters\n11:30pm: Gunshot heard",
	},
	{
		Report:    "The %s tells a revealing story",
		Discovery: "witness statement (type 'examine witness')",
		File:      "forensics.txt",
		Contents:  "Victim had traces of lipstick on collar (shade matches Victoria)",
	},
	{
		Report:    "You discover %s in the victim's coat pocket",
		Discovery: "hotel key (type 'examine hotel_key')",
		File:      "hotel_key.txt",
		Contents:  "Hotel Key #47 found in victim's pocket (Roosevelt Hotel)",
	},
	{
		Report:    "The %s reveals critical details",
		Discovery: "toxicology report (type 'examine tox_report')",
		File:      "tox_report.txt",
		Contents:  "Toxicology: High levels of barbiturates in victim's system",
	},
}

// Evidence maps the names accepted by examine to case files and the
// detective's note about them.
var Evidence = []struct {
	Name string
	Note string
}{
	{"ledger", "Note: Large payment to 'Vixen' noted"},
	{"ballistics", "Note: Gun registered to Victoria LaRue"},
	{"witness", "Note: Timeline matches Victoria's alibi gap"},
	{"forensics", "Note: Victoria was seen with victim before murder"},
	{"hotel_key", "Note: Connects victim to Roosevelt Hotel"},
	{"tox_report", "Note: Matches Victoria's access to sedatives"},
}
