package audiometry

// Presentation records one tone presented to the patient and the outcome.
type Presentation struct {
	Ear       Ear       `json:"ear"`
	Frequency Frequency `json:"frequency"`
	Intensity int       `json:"intensity"` // dB HL.
	Heard     bool      `json:"heard"`
}
