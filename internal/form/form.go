// Package form holds the two free-text inputs of a generation request.
package form

import "strings"

const (
	DefaultNiche    = "Ethnic Kurtas for women"
	DefaultLocation = "Patna, Bihar"

	NichePlaceholder    = "e.g., Handcrafted leather bags"
	LocationPlaceholder = "e.g., Jaipur, Rajasthan"

	requiredMessage = "Both fields are required."
)

// Input is bound from the HTML form fields or a JSON body.
type Input struct {
	Niche    string `form:"niche" json:"niche"`
	Location string `form:"location" json:"location"`
}

// Default returns the example values the page is first rendered with.
func Default() Input {
	return Input{Niche: DefaultNiche, Location: DefaultLocation}
}

// ValidationError is shown inline next to the form. A request that fails
// validation never reaches the generator.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Normalize returns a copy with surrounding whitespace removed.
func (in Input) Normalize() Input {
	return Input{
		Niche:    strings.TrimSpace(in.Niche),
		Location: strings.TrimSpace(in.Location),
	}
}

// Validate reports whether either field is empty after trimming.
func (in Input) Validate() error {
	n := in.Normalize()
	if n.Niche == "" || n.Location == "" {
		return &ValidationError{Message: requiredMessage}
	}
	return nil
}
