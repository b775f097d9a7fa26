package session

// Fixed streaming defaults applied to every session the frontend creates.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFPS    = 60
)

type Screen struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`
}

// CreateRequest is the body sent to the gateway's POST /1.0/sessions.
type CreateRequest struct {
	App      string `json:"app"`
	Joinable bool   `json:"joinable"`
	Screen   Screen `json:"screen"`
}

// NewCreateRequest builds a session request for the given application with
// the fixed defaults. App must be validated as non-empty by the caller.
func NewCreateRequest(app string) CreateRequest {
	return CreateRequest{
		App:      app,
		Joinable: false,
		Screen: Screen{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
	}
}
