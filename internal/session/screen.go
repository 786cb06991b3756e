package session

import (
	"errors"
	"fmt"
)

// Screen is a storefront view a client can be on.
type Screen string

const (
	ScreenLogin   Screen = "login"
	ScreenSignup  Screen = "signup"
	ScreenCatalog Screen = "catalog"
	ScreenCart    Screen = "cart"
)

// Event triggers a screen transition.
type Event string

const (
	EventShowSignup      Event = "show_signup"
	EventSignupCompleted Event = "signup_completed"
	EventBackToLogin     Event = "back_to_login"
	EventLoginSucceeded  Event = "login_succeeded"
	EventOpenCart        Event = "open_cart"
	EventBackToCatalog   Event = "back_to_catalog"
	EventLogout          Event = "logout"
)

var ErrInvalidTransition = errors.New("invalid screen transition")

type transition struct {
	from  Screen
	event Event
}

var transitions = map[transition]Screen{
	{ScreenLogin, EventShowSignup}:       ScreenSignup,
	{ScreenLogin, EventLoginSucceeded}:   ScreenCatalog,
	{ScreenSignup, EventSignupCompleted}: ScreenLogin,
	{ScreenSignup, EventBackToLogin}:     ScreenLogin,
	{ScreenCatalog, EventOpenCart}:       ScreenCart,
	{ScreenCatalog, EventLogout}:         ScreenLogin,
	{ScreenCart, EventBackToCatalog}:     ScreenCatalog,
	{ScreenCart, EventLogout}:            ScreenLogin,
}

// Next returns the screen reached from s on e.
func Next(s Screen, e Event) (Screen, error) {
	to, ok := transitions[transition{s, e}]
	if !ok {
		return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
	}
	return to, nil
}
