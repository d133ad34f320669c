package cp

import (
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/internal/scrapers/ujs/results"
	"docketsearch/internal/scrapers/ujs/workflow"
)

const viewstateGenerator = "751CF88B"

const (
	controlPrefix = "ctl00$ctl00$ctl00$cphMain$cphDynamicContent$cphDynamicContent$"

	searchTypeField = controlPrefix + "searchTypeListControl"

	participantPrefix   = controlPrefix + "participantCriteriaControl$"
	lastNameField       = participantPrefix + "lastNameControl"
	firstNameField      = participantPrefix + "firstNameControl"
	dobField            = participantPrefix + "dateOfBirthControl$DateTextBox"
	dobStateField       = participantPrefix + "dateOfBirthControl$DateTextBoxMaskExtender_ClientState"
	countyListField     = participantPrefix + "countyListControl"
	docketTypeListField = participantPrefix + "docketTypeListControl"
	caseCategoryField   = participantPrefix + "caseCategoryListControl"
	caseStatusField     = participantPrefix + "caseStatusListControl"
	filedBeginField     = participantPrefix + "dateFiledControl$beginDateChildControl$DateTextBox"
	filedBeginState     = participantPrefix + "dateFiledControl$beginDateChildControl$DateTextBoxMaskExtender_ClientState"
	filedEndField       = participantPrefix + "dateFiledControl$endDateChildControl$DateTextBox"
	filedEndState       = participantPrefix + "dateFiledControl$endDateChildControl$DateTextBoxMaskExtender_ClientState"
	participantSearch   = participantPrefix + "searchCommandControl"

	docketPrefix    = controlPrefix + "docketNumberCriteriaControl$"
	courtField      = docketPrefix + "docketNumberControl$mddlCourt"
	countyField     = docketPrefix + "docketNumberControl$mtxtCounty"
	docketTypeField = docketPrefix + "docketNumberControl$mddlDocketType"
	sequenceField   = docketPrefix + "docketNumberControl$mtxtSequenceNumber"
	yearField       = docketPrefix + "docketNumberControl$mtxtYear"
	docketSearch    = docketPrefix + "searchCommandControl"

	scriptManagerField = "ctl00$ctl00$ctl00$ScriptManager1"
	resultsPanel       = participantPrefix + "searchResultsGridControl$resultsUpdatePanel"
)

const (
	participantSearchView = "Aopc.Cp.Views.DocketSheets.IParticipantSearchView, CPCMSApplication, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null"
	docketSearchView      = "Aopc.Cp.Views.DocketSheets.IDocketNumberSearchView, CPCMSApplication, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null"
)

// the earliest filing date the portal accepts
const filedSince = "01/01/1950"

func pageState() portal.Form {
	return portal.Form{
		portal.EventTargetField:        "",
		portal.EventArgumentField:      "",
		"__LASTFOCUS":                  "",
		portal.ViewstateGeneratorField: viewstateGenerator,
		"__SCROLLPOSITIONX":            "0",
		"__SCROLLPOSITIONY":            "0",
	}
}

func selectParticipantForm() portal.Form {
	return pageState().With(portal.Form{
		portal.EventTargetField: searchTypeField,
		searchTypeField:         participantSearchView,
		courtField:              "",
		countyField:             "",
		docketTypeField:         "",
		sequenceField:           "",
		yearField:               "",
	})
}

func participantForm(env workflow.Env, q workflow.NameQuery) portal.Form {
	return pageState().With(portal.Form{
		searchTypeField:        participantSearchView,
		lastNameField:          q.Last,
		firstNameField:         q.First,
		dobField:               env.Date(q.DOB),
		dobStateField:          "",
		countyListField:        "",
		docketTypeListField:    "",
		caseCategoryField:      "",
		caseStatusField:        "",
		filedBeginField:        filedSince,
		filedBeginState:        "",
		filedEndField:          env.Today(),
		filedEndState:          "",
		participantSearch:      "Search",
		"__VIEWSTATEENCRYPTED": "",
	})
}

// paging postbacks are sent with the date of birth blanked out
func pageForm(previous portal.Form, target results.PageTarget) portal.Form {
	return previous.Without(participantSearch).With(portal.Form{
		portal.EventTargetField:   target.EventTarget,
		portal.EventArgumentField: target.Argument,
		dobField:                  "",
		scriptManagerField:        resultsPanel + "|" + target.EventTarget,
	})
}

func docketForm(dn docket.DocketNumber) portal.Form {
	return pageState().With(portal.Form{
		searchTypeField: docketSearchView,
		courtField:      dn.Court,
		countyField:     dn.Area,
		docketTypeField: dn.Type,
		sequenceField:   dn.Sequence,
		yearField:       dn.Year,
		docketSearch:    "Search",
	})
}
