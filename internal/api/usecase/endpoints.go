package usecase

import "net/http"

// endpoint describes one backend capability.
type endpoint struct {
	operation      string
	method         string
	path           string
	defaultMessage string
}

var (
	fetchServicesEndpoint           = endpoint{"fetchServices", http.MethodGet, "/servicios", "Error al obtener servicios"}
	fetchNewsEndpoint               = endpoint{"fetchNews", http.MethodGet, "/noticias", "Error al obtener noticias"}
	fetchAuthenticatedNewsEndpoint  = endpoint{"fetchAuthenticatedNews", http.MethodGet, "/noticias_autenticado", "Error al obtener noticias autenticadas"}
	fetchVideosEndpoint             = endpoint{"fetchVideos", http.MethodGet, "/videos", "Error al obtener videos"}
	fetchSheltersEndpoint           = endpoint{"fetchShelters", http.MethodGet, "/albergues", "Error al obtener albergues"}
	fetchMembersEndpoint            = endpoint{"fetchMembers", http.MethodGet, "/miembros", "Error al obtener miembros"}
	fetchSituationsEndpoint         = endpoint{"fetchSituations", http.MethodGet, "/situaciones", "Error al obtener situaciones"}
	fetchAboutEndpoint              = endpoint{"fetchAbout", http.MethodGet, "/acerca", "Error al obtener información de acerca"}
	fetchHistoryEndpoint            = endpoint{"fetchHistory", http.MethodGet, "/historia", "Error al obtener información de historia"}
	fetchPreventiveMeasuresEndpoint = endpoint{"fetchPreventiveMeasures", http.MethodGet, "/medidas_preventivas", "Error al obtener medidas preventivas"}
	registerVolunteerEndpoint       = endpoint{"registerVolunteer", http.MethodPost, "/registrar_voluntario", "Error al registrar voluntario"}
	loginEndpoint                   = endpoint{"login", http.MethodPost, "/iniciar_sesion", "Error al iniciar sesión"}
	recoverPasswordEndpoint         = endpoint{"recoverPassword", http.MethodPost, "/recuperar_contrasena", "Error al recuperar contraseña"}
	reportSituationEndpoint         = endpoint{"reportSituation", http.MethodPost, "/reportar_situacion", "Error al reportar situación"}
	fetchMySituationsEndpoint       = endpoint{"fetchMySituations", http.MethodGet, "/mis_situaciones", "Error al obtener mis situaciones"}
	changePasswordEndpoint          = endpoint{"changePassword", http.MethodPost, "/cambiar_clave", "Error al cambiar contraseña"}
)
