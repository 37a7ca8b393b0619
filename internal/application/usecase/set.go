package usecase

// Set groups the operations exposed by the transport adapters.
type Set struct {
	SimulateOffer   *SimulateOfferUseCase
	GetOffer        *GetOfferUseCase
	ListOffers      *ListOffersUseCase
	GetSettings     *GetSettingsUseCase
	UpdateSettings  *UpdateSettingsUseCase
	SettingsHistory *SettingsHistoryUseCase
	ListCountries   *ListCountriesUseCase
	Register        *RegisterUseCase
	Login           *LoginUseCase
}
