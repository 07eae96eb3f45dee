package handlers

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Auth         *AuthHandler
	Staff        *StaffHandler
	Catalog      *CatalogHandler
	Session      *SessionHandler
	Rating       *RatingHandler
	Analytics    *AnalyticsHandler
	Subscription *SubscriptionHandler
}
