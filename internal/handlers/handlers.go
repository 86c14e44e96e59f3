package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	CoachHandler   *CoachHandler
	BookingHandler *BookingHandler
	ChatHandler    *ChatHandler
	ReviewHandler  *ReviewHandler
	AdminHandler   *AdminHandler
}
