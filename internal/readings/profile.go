package readings

// Profile describes the column layout and number format of a shift sheet
// export. Portuguese back-office exports use ';' and a decimal comma.
type Profile struct {
	Name     string
	Comma    rune
	KindCol  string
	RefCol   string
	PhaseCol string
	ValueCol string
	Kinds    map[string]Kind
	Phases   map[string]Phase
	DecComma bool
}

func (p Profile) requiredCols() []string {
	return []string{p.KindCol, p.RefCol, p.PhaseCol, p.ValueCol}
}

var profiles = []Profile{
	{
		Name:     "pt",
		Comma:    ';',
		KindCol:  "Tipo",
		RefCol:   "Referência",
		PhaseCol: "Fase",
		ValueCol: "Valor",
		Kinds: map[string]Kind{
			"contador": KindMeter,
			"sonda":    KindGauge,
			"descarga": KindDelivery,
			"caixa":    KindCash,
		},
		Phases: map[string]Phase{
			"início": PhaseStart,
			"inicio": PhaseStart,
			"fim":    PhaseEnd,
		},
		DecComma: true,
	},
	{
		Name:     "en",
		Comma:    ',',
		KindCol:  "type",
		RefCol:   "subject",
		PhaseCol: "phase",
		ValueCol: "value",
		Kinds: map[string]Kind{
			"meter":    KindMeter,
			"gauge":    KindGauge,
			"delivery": KindDelivery,
			"cash":     KindCash,
		},
		Phases: map[string]Phase{
			"start": PhaseStart,
			"end":   PhaseEnd,
		},
	},
}
