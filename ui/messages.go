package ui

import (
	"cutui/model"
)

// Message type aliases - the data lives in the model package
type Message = model.Message

type streamEventMsg = model.StreamEventMsg
type streamDoneMsg = model.StreamDoneMsg
type streamStoppedMsg = model.StreamStoppedMsg
type streamErrorMsg = model.StreamErrorMsg
type backendConfigMsg = model.BackendConfigMsg
type keyStatusMsg = model.KeyStatusMsg
type authValidatedMsg = model.AuthValidatedMsg
type healthCheckMsg = model.HealthCheckMsg
type resetDoneMsg = model.ResetDoneMsg
type desktopOpenedMsg = model.DesktopOpenedMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg

type SettingFieldType int

const (
	SettingTypeProvider SettingFieldType = iota
	SettingTypeModel
	SettingTypeAPIKey
	SettingTypeSystemPromptSuffix
	SettingTypeMaxTokens
	SettingTypeThinkingBudget
	SettingTypeRecentImages
	SettingTypeToolVersion
	SettingTypeTokenEfficientTools
)

type SettingField struct {
	Label        string
	Value        string
	DefaultValue string
	Type         SettingFieldType
	Masked       bool
	ErrorMsg     string
}
