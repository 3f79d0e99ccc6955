// Package fsm keeps per-chat conversation state for the bot.
package fsm

import "strings"

// State identifies a step of a bot flow as "Group:name"
type State string

// None means the chat is outside of any flow
const None State = ""

const (
	RegistrationUsername  State = "Registration:username"
	RegistrationEmail     State = "Registration:email"
	RegistrationPassword1 State = "Registration:password1"
	RegistrationPassword2 State = "Registration:password2"

	AuthorizationUsername State = "Authorization:username"
	AuthorizationEmail    State = "Authorization:email"
	AuthorizationPassword State = "Authorization:password"

	AuthorizedToken State = "Authorized:token"

	ProfileRetrieve              State = "UserProfile:retrieve"
	ProfileUpdateOptions         State = "UserProfile:update_options"
	ProfileImageUpdate           State = "UserProfile:profile_image_update"
	ProfileNativeLanguagesUpdate State = "UserProfile:native_languages_update"
	ProfileFirstNameUpdate       State = "UserProfile:first_name_update"
	ProfileLearningLanguagesInfo State = "UserProfile:learning_languages_info"
	ProfileNativeLanguagesInfo   State = "UserProfile:native_languages_info"

	AddLearningLanguageLanguage State = "AddLearningLanguage:language"
)

// transitions holds the state that follows each state on valid input.
// States missing here end their flow.
var transitions = map[State]State{
	RegistrationUsername:  RegistrationEmail,
	RegistrationEmail:     RegistrationPassword1,
	RegistrationPassword1: RegistrationPassword2,

	AuthorizationUsername: AuthorizationPassword,
	AuthorizationEmail:    AuthorizationPassword,
	AuthorizationPassword: AuthorizedToken,

	ProfileUpdateOptions:         ProfileRetrieve,
	ProfileImageUpdate:           ProfileRetrieve,
	ProfileNativeLanguagesUpdate: ProfileRetrieve,
	ProfileFirstNameUpdate:       ProfileRetrieve,
	AddLearningLanguageLanguage:  ProfileRetrieve,
}

var known = map[State]bool{
	RegistrationUsername: true, RegistrationEmail: true, RegistrationPassword1: true, RegistrationPassword2: true,
	AuthorizationUsername: true, AuthorizationEmail: true, AuthorizationPassword: true,
	AuthorizedToken: true,
	ProfileRetrieve: true, ProfileUpdateOptions: true, ProfileImageUpdate: true,
	ProfileNativeLanguagesUpdate: true, ProfileFirstNameUpdate: true,
	ProfileLearningLanguagesInfo: true, ProfileNativeLanguagesInfo: true,
	AddLearningLanguageLanguage: true,
}

// Valid reports whether s is None or a declared state
func (s State) Valid() bool {
	return s == None || known[s]
}

// Group returns the flow name of the state
func (s State) Group() string {
	group, _, _ := strings.Cut(string(s), ":")
	return group
}

// Next returns the state that follows s, false when s ends its flow
func (s State) Next() (State, bool) {
	next, ok := transitions[s]
	return next, ok
}

// Final reports whether s completes its flow
func (s State) Final() bool {
	_, ok := transitions[s]
	return s != None && !ok
}
