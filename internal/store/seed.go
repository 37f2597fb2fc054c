package store

import "github.com/samhotchkiss/sindicato-comms/internal/models"

// DemoSnapshot is the data the dashboard starts with when demo seeding is on.
func DemoSnapshot(acting models.Secretariat) Snapshot {
	return Snapshot{
		ActingSecretariat: acting,
		Activities: []models.Activity{
			{
				ID:            "1",
				Title:         "Rueda de prensa sobre la nueva ley laboral",
				Category:      models.CategoryMediaContact,
				Secretariat:   models.SecretariatGeneral,
				Description:   "Se convocó a los principales medios para explicar la postura del sindicato sobre la reforma laboral. Hubo buena asistencia.",
				RelevanceTags: []string{"prensa", "reforma laboral", "posicionamiento público"},
				Observations:  "Gran repercusión en medios digitales. La SER y El País publicaron la noticia.",
				Date:          "2023-10-26T10:00:00.000Z",
			},
			{
				ID:            "2",
				Title:         "Taller de comunicación no violenta",
				Category:      models.CategoryTraining,
				Secretariat:   models.SecretariatTraining,
				Description:   "Taller impartido para delegados y delegadas para mejorar la gestión de conflictos.",
				RelevanceTags: []string{"formación interna", "habilidades blandas"},
				Observations:  "Muy valorado por los asistentes. Se propone una segunda edición.",
				Date:          "2023-10-25T15:00:00.000Z",
			},
			{
				ID:            "3",
				Title:         "Campaña en redes por el 8M",
				Category:      models.CategorySocialMedia,
				Secretariat:   models.SecretariatCommunication,
				Description:   "Lanzamiento de la campaña #SindicalismoFeminista con vídeos y testimonios.",
				RelevanceTags: []string{"8M", "feminismo", "sensibilización"},
				Observations:  "Alto engagement en Twitter e Instagram. Se llegó a un público más joven.",
				Date:          "2023-03-01T09:00:00.000Z",
			},
			{
				ID:            "4",
				Title:         "Acuerdo en el sector sanitario",
				Category:      models.CategoryMemberSupport,
				Secretariat:   models.SecretariatHealth,
				Description:   "Se ha firmado un acuerdo para la mejora de las condiciones laborales del personal de enfermería.",
				RelevanceTags: []string{"acuerdo", "sanidad", "negociación"},
				Observations:  "Satisfacción generalizada entre la afiliación del sector.",
				Date:          "2023-11-05T12:00:00.000Z",
			},
		},
		PressReleases: []models.PressRelease{
			{
				ID:          "pr1",
				Secretariat: models.SecretariatGeneral,
				Preheadline: "NEGOCIACIÓN COLECTIVA",
				Headline:    "UGT Firma un Preacuerdo Histórico para el Sector del Metal",
				Subheadline: "El acuerdo contempla una subida salarial del 5% y mejoras en la conciliación.",
				Lead:        "La Unión General de Trabajadoras y Trabajadores (UGT) ha alcanzado un preacuerdo con la patronal del sector del metal que beneficiará a más de 20.000 trabajadores en la provincia, sentando un precedente en la negociación colectiva.",
				Body:        "Tras semanas de intensas negociaciones, el equipo negociador de UGT ha conseguido arrancar un compromiso firme de la patronal para mejorar sustancialmente las condiciones laborales. El punto clave del acuerdo es una subida salarial del 5% para el presente año, con una cláusula de revisión conforme al IPC para garantizar que no se pierda poder adquisitivo.\n\nAdemás, se han incluido importantes avances en materia de conciliación, como la ampliación del permiso de paternidad y la creación de una bolsa de horas para asuntos propios.",
				Contact:     "Secretaría de Comunicación\ncomunicacion@ugtsalamanca.es\n923 21 21 21",
				Date:        "2023-11-10T11:00:00.000Z",
			},
		},
		Contacts: []models.JournalistContact{
			{ID: "j1", Name: "Ana García", Media: "El País", Phone: "600111222", Email: "agarcia@elpais.es", Role: "Corresponsal de política", IsFrequent: true},
			{ID: "j2", Name: "Carlos Sánchez", Media: "Cadena SER", Phone: "600333444", Email: "csanchez@cadenaser.es", Role: "Jefe de sección de laboral", IsFrequent: true},
			{ID: "j3", Name: "Laura Martinez", Media: "eldiario.es", Phone: "600555666", Email: "lmartinez@eldiario.es", Role: "Periodista de investigación", IsFrequent: false},
		},
		Channels: []models.Channel{
			{ID: "1", Name: "#anuncios-generales", Description: "Comunicados y directrices oficiales.", Icon: "comms"},
			{ID: "2", Name: "#proyecto-congreso24", Description: "Organización del próximo congreso.", Icon: "dashboard"},
			{ID: "3", Name: "#sec-igualdad", Description: "Espacio de trabajo de la Secretaría de Igualdad.", Icon: "comms"},
		},
		Messages: map[string][]models.Message{
			"1": {
				{ID: "m1-1", Text: "Recordatorio: La próxima asamblea general será el viernes a las 18:00h.", Author: models.SecretariatGeneral, Timestamp: "10:30"},
			},
			"2": {
				{ID: "m2-1", Text: "¿Tenemos ya la lista definitiva de ponentes?", Author: models.SecretariatOrganization, Timestamp: "09:15"},
			},
			"3": {},
		},
	}
}

// Seed loads the demo data into s, replacing its state.
func Seed(s *Store) {
	s.Restore(DemoSnapshot(s.ActingSecretariat()))
}
