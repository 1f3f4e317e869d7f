package types

// Channel identifies one outreach delivery channel.
type Channel string

// Supported outreach channels.
const (
	ChannelEmail    Channel = "email"
	ChannelLinkedIn Channel = "linkedin"
)

// OutreachMessage is a generated outreach message for one channel. All six
// parts are required for the email channel; the linkedin channel carries its
// content in Body with the remaining parts collapsed to short forms.
type OutreachMessage struct {
	Subject   string `json:"subject" validate:"required,min=5"`
	Greeting  string `json:"greeting" validate:"required"`
	Opening   string `json:"opening" validate:"required"`
	Body      string `json:"body" validate:"required,min=50"`
	Closing   string `json:"closing" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}
