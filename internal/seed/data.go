package seed

import (
	"time"

	"github.com/johnwards/taskboard/internal/domain"
)

// DueIn is how far after the seed time the first task falls due.
const DueIn = 7 * 24 * time.Hour

var (
	alice = domain.PersonInput{Email: "alice@example.com", Name: "Alice Anderson", Role: domain.RoleManager}
	bob   = domain.PersonInput{Email: "bob@example.com", Name: "Bob Builder", Role: domain.RoleDeveloper}

	urgent   = domain.TagInput{Name: "Urgent", Color: "#FF0000"}
	frontend = domain.TagInput{Name: "Frontend", Color: "#00AAFF"}
)

const (
	setupTitle       = "Setup project repo"
	setupDescription = "Initialize repository with basic configs"

	loginTitle       = "Build login page"
	loginDescription = "Create React login form with validation"

	resetReminder = "Make sure to include password reset link!"
)
