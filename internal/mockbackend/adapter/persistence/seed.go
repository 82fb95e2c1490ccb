package persistence

// Catalogue names served by the public endpoints.
const (
	CatalogServices           = "servicios"
	CatalogNews               = "noticias"
	CatalogMemberNews         = "noticias_autenticado"
	CatalogVideos             = "videos"
	CatalogShelters           = "albergues"
	CatalogMembers            = "miembros"
	CatalogPreventiveMeasures = "medidas_preventivas"
)

const seedHistory = "La Defensa Civil fue creada el 17 de junio de 1966 mediante la Ley 257, " +
	"con el propósito de proteger a la población ante desastres naturales y emergencias."

func seedCatalog() map[string][]map[string]interface{} {
	return map[string][]map[string]interface{}{
		CatalogServices: {
			{"id": "1", "nombre": "Prevención", "descripcion": "Capacitación comunitaria en gestión de riesgos", "foto": ""},
			{"id": "2", "nombre": "Rescate", "descripcion": "Búsqueda y rescate en zonas afectadas", "foto": ""},
		},
		CatalogNews: {
			{"id": "1", "titulo": "Huracán", "contenido": "Se activan los albergues en la región sur", "fecha": "2024-08-20", "foto": ""},
			{"id": "2", "titulo": "Simulacro nacional", "contenido": "Participa en el simulacro de evacuación", "fecha": "2024-09-01", "foto": ""},
		},
		CatalogMemberNews: {
			{"id": "10", "titulo": "Reunión de voluntarios", "contenido": "Convocatoria para el sábado", "fecha": "2024-09-05", "foto": ""},
		},
		CatalogVideos: {
			{"id": "1", "titulo": "Qué hacer en un terremoto", "descripcion": "Guía rápida", "link": "dQw4w9WgXcQ", "fecha": "2024-05-10"},
		},
		CatalogShelters: {
			{"codigo": "A-01", "edificio": "Escuela Básica Los Mina", "ciudad": "Santo Domingo Este", "coordinador": "Juan Pérez", "telefono": "809-555-0101", "capacidad": "200", "lat": "18.4861", "lng": "-69.8578"},
			{"codigo": "A-02", "edificio": "Polideportivo", "ciudad": "Santiago", "coordinador": "María Gómez", "telefono": "809-555-0102", "capacidad": "350", "lat": "19.4517", "lng": "-70.6970"},
		},
		CatalogMembers: {
			{"id": "1", "nombre": "Juan Salas", "cargo": "Director Ejecutivo", "foto": ""},
			{"id": "2", "nombre": "Ana Reyes", "cargo": "Coordinadora de Operaciones", "foto": ""},
		},
		CatalogPreventiveMeasures: {
			{"id": "1", "titulo": "Huracanes", "descripcion": "Asegura puertas y ventanas, ten agua y linterna", "foto": ""},
			{"id": "2", "titulo": "Inundaciones", "descripcion": "Evita cruzar cañadas y ríos crecidos", "foto": ""},
		},
	}
}

func seedAbout() map[string]interface{} {
	return map[string]interface{}{
		"mision": "Proteger la vida y los bienes de la población ante desastres.",
		"vision": "Ser una institución líder en gestión de riesgos.",
		"valores": []string{"Servicio", "Solidaridad", "Disciplina"},
	}
}
