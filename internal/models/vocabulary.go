package models

import (
	"fmt"
	"strings"
)

// Secretariat is one of the fixed organizational units of the union. It is
// both a field on activities and press releases and the identity a user acts as.
type Secretariat string

const (
	SecretariatLocal              Secretariat = "Local"
	SecretariatCentral            Secretariat = "Central"
	SecretariatOrganization       Secretariat = "Organización"
	SecretariatGeneral            Secretariat = "General"
	SecretariatSocialHealth       Secretariat = "Sociosanitarios"
	SecretariatPostal             Secretariat = "Postal"
	SecretariatTraining           Secretariat = "Formación"
	SecretariatCommunication      Secretariat = "Comunicación"
	SecretariatPrivateEducation   Secretariat = "Enseñanza Privada"
	SecretariatEducation          Secretariat = "Educación"
	SecretariatHealth             Secretariat = "Sanidad"
	SecretariatRegional           Secretariat = "Autonómica"
	SecretariatUsal               Secretariat = "Usal"
	SecretariatOccupationalHealth Secretariat = "Salud Laboral"
)

var secretariats = []Secretariat{
	SecretariatLocal,
	SecretariatCentral,
	SecretariatOrganization,
	SecretariatGeneral,
	SecretariatSocialHealth,
	SecretariatPostal,
	SecretariatTraining,
	SecretariatCommunication,
	SecretariatPrivateEducation,
	SecretariatEducation,
	SecretariatHealth,
	SecretariatRegional,
	SecretariatUsal,
	SecretariatOccupationalHealth,
}

// Secretariats returns every secretariat in declaration order.
func Secretariats() []Secretariat {
	return append([]Secretariat(nil), secretariats...)
}

// Valid reports whether s belongs to the fixed vocabulary.
func (s Secretariat) Valid() bool {
	for _, candidate := range secretariats {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSecretariat validates a raw secretariat label.
func ParseSecretariat(raw string) (Secretariat, error) {
	s := Secretariat(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("invalid secretariat %q", raw)
	}
	return s, nil
}

// ActivityCategory classifies an activity.
type ActivityCategory string

const (
	CategoryInternalMeeting  ActivityCategory = "Reunión Interna"
	CategoryExternalCampaign ActivityCategory = "Campaña Externa"
	CategoryTraining         ActivityCategory = "Formación"
	CategorySocialMedia      ActivityCategory = "Redes Sociales"
	CategoryMediaContact     ActivityCategory = "Contacto con Medios"
	CategoryMemberSupport    ActivityCategory = "Atención a Afiliados"
)

var activityCategories = []ActivityCategory{
	CategoryInternalMeeting,
	CategoryExternalCampaign,
	CategoryTraining,
	CategorySocialMedia,
	CategoryMediaContact,
	CategoryMemberSupport,
}

// ActivityCategories returns every category in declaration order.
func ActivityCategories() []ActivityCategory {
	return append([]ActivityCategory(nil), activityCategories...)
}

func (c ActivityCategory) Valid() bool {
	for _, candidate := range activityCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

func ParseActivityCategory(raw string) (ActivityCategory, error) {
	c := ActivityCategory(strings.TrimSpace(raw))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q", raw)
	}
	return c, nil
}

// Platform is a social network target for generated copy.
type Platform string

const (
	PlatformTwitter   Platform = "Twitter"
	PlatformFacebook  Platform = "Facebook"
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
	PlatformMessaging Platform = "WhatsApp/Telegram"
)

var platforms = []Platform{
	PlatformTwitter,
	PlatformFacebook,
	PlatformInstagram,
	PlatformTikTok,
	PlatformMessaging,
}

func Platforms() []Platform {
	return append([]Platform(nil), platforms...)
}

func (p Platform) Valid() bool {
	for _, candidate := range platforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ChannelIcon is the tag a channel is drawn with.
type ChannelIcon string

// DefaultChannelIcon is used when a channel is created without an icon.
const DefaultChannelIcon ChannelIcon = "comms"

var channelIcons = []ChannelIcon{
	"comms",
	"dashboard",
	"analytics",
	"resources",
	"newspaper",
	"share",
	"sparkles",
	"activity",
}

func ChannelIcons() []ChannelIcon {
	return append([]ChannelIcon(nil), channelIcons...)
}

func (i ChannelIcon) Valid() bool {
	for _, candidate := range channelIcons {
		if candidate == i {
			return true
		}
	}
	return false
}

// View identifies a dashboard screen.
type View string

const (
	ViewDashboard     View = "Dashboard"
	ViewActivityLog   View = "ActivityLog"
	ViewAnalytics     View = "Analytics"
	ViewExternalComms View = "ExternalComms"
	ViewSocialMedia   View = "SocialMedia"
	ViewInternalComms View = "InternalComms"
	ViewResources     View = "Resources"
)

var views = []View{
	ViewDashboard,
	ViewActivityLog,
	ViewAnalytics,
	ViewExternalComms,
	ViewSocialMedia,
	ViewInternalComms,
	ViewResources,
}

var viewTitles = map[View]string{
	ViewDashboard:     "Dashboard Estratégico",
	ViewActivityLog:   "Gestión de Actividades",
	ViewAnalytics:     "Análisis y Métricas",
	ViewExternalComms: "Comunicación Externa",
	ViewSocialMedia:   "Generador para Redes Sociales",
	ViewInternalComms: "Comunicación Interna",
	ViewResources:     "Recursos y Guías",
}

func Views() []View {
	return append([]View(nil), views...)
}

// Title returns the header title shown for the view.
func (v View) Title() string {
	return viewTitles[v]
}

func (v View) Valid() bool {
	_, ok := viewTitles[v]
	return ok
}
