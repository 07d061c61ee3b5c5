package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscope/pkg/settings"
)

// maybeShowWelcome prints a short orientation block the first time the CLI
// runs and records that it was shown. Settings failures are logged at debug
// level and never block the command.
func maybeShowWelcome(logger *log.Logger) {
	store, err := settings.NewStore("")
	if err != nil {
		logger.Debug("settings store unavailable", "err", err)
		return
	}

	st, err := store.Load()
	if err != nil {
		logger.Debug("settings unreadable", "err", err)
		return
	}
	if st.WelcomeShown {
		return
	}

	fmt.Println(StyleTitle.Render("Welcome to depscope"))
	fmt.Println(StyleDim.Render("Explore the dependency graph of installed .deb packages."))
	printNewline()
	printInfo("Try: %s", StyleHighlight.Render("depscope deps bash"))
	printInfo("Or:  %s", StyleHighlight.Render("depscope cycles libc6"))
	printNewline()

	st.WelcomeShown = true
	if err := store.Save(st); err != nil {
		logger.Debug("settings not saved", "err", err)
	}
}
