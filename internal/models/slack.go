package models

// InteractivePayload is the JSON Slack posts (form-encoded under "payload")
// when a user interacts with a block element.
type InteractivePayload struct {
	ResponseURL string   `json:"response_url"`
	Actions     []Action `json:"actions"`
}

// Action is a single block-element interaction inside an interactive payload.
type Action struct {
	ActionID        string         `json:"action_id"`
	SelectedOptions []SelectOption `json:"selected_options"`
}

// SelectOption is one chosen entry of a multi_static_select element.
// Value carries the repository full name.
type SelectOption struct {
	Value string `json:"value"`
}
