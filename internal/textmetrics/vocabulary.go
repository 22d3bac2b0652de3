package textmetrics

// Vocabulary bundles the closed word lists the extractors match against.
// It is built once (DefaultVocabulary) and passed explicitly into every
// extractor call; nothing in this package reads ambient state.
type Vocabulary struct {
	// FirstPerson is the strict narrator set: ich-forms only, no wir/unser,
	// so a "wir kochen" article does not pass as first-person narration.
	FirstPerson []string

	// SecondPerson is the informal du-address set.
	SecondPerson []string

	// FormalAddress is matched case-sensitively; the capital S distinguishes
	// the formal "Sie" from the pronoun "sie".
	FormalAddress []string

	// BridgeMarkers open a background section that connects back to the
	// introduction scene.
	BridgeMarkers []string

	// Sensory words signal concrete scene detail in the background story.
	Sensory []string

	// Camp-cooking equipment vocabularies for the plausibility checks.
	Stove  []string // expected heat source
	Pan    []string // expected main vessel
	Oven   []string // disallowed unless explicitly requested
	Dishes []string // secondary containers, bounded under "wenig Abwasch"
	Pots   []string
}

// DefaultVocabulary returns the German camp-cooking vocabulary the checks
// were tuned against.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		FirstPerson: []string{
			"ich", "mir", "mich", "mein", "meine", "meinem", "meinen", "meiner", "meines",
		},
		SecondPerson: []string{
			"du", "dich", "dir", "dein", "deine", "deinen", "deinem", "deiner", "deines",
		},
		FormalAddress: []string{
			"Sie", "Ihnen", "Ihr", "Ihre", "Ihrem", "Ihren", "Ihrer", "Ihres",
		},
		BridgeMarkers: []string{
			"meine erste begegnung", "ein paar tage zuvor", "später", "damals", "hier", "dort",
		},
		Sensory: []string{
			"brutzeln", "brutzelt", "zischen", "zischt", "knistern", "knistert",
			"dampfen", "dampft", "duften", "duftet", "duft", "geruch",
			"knusprig", "cremig", "rauchig", "würzig", "golden", "saftig",
		},
		Stove:  []string{"kocher", "campingkocher", "gaskocher"},
		Pan:    []string{"pfanne", "guss", "gusseisen"},
		Oven:   []string{"backofen", "ofen"},
		Dishes: []string{"schüssel", "schale", "becher"},
		Pots:   []string{"topf", "töpfe", "töpfen"},
	}
}
