package metrics

type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

type BMIResult struct {
	Value    float64     `json:"value"`
	Category BMICategory `json:"category"`
	ColorTag string      `json:"color_tag"`
}

// Upper bounds are exclusive; anything past the last band is obese.
var bmiBands = []struct {
	upper    float64
	category BMICategory
	color    string
}{
	{upper: 18.5, category: BMIUnderweight, color: "warning"},
	{upper: 25, category: BMINormal, color: "success"},
	{upper: 30, category: BMIOverweight, color: "warning"},
}

// CalculateBMI classifies weight against height. heightCm must be > 0.
func CalculateBMI(weightKg, heightCm float64) BMIResult {
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)

	out := BMIResult{Value: round1(bmi), Category: BMIObese, ColorTag: "danger"}
	for _, band := range bmiBands {
		if bmi < band.upper {
			out.Category = band.category
			out.ColorTag = band.color
			break
		}
	}
	return out
}
