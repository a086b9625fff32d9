package infer

import "regexp"

// textRule maps a keyword pattern found in an entity's display text to the
// tags it implies.
type textRule struct {
	pattern *regexp.Regexp
	tags    []string
}

func rule(pattern string, tags ...string) textRule {
	return textRule{pattern: regexp.MustCompile(`(?i)` + pattern), tags: tags}
}

// textRules are searched against the entity's name and descriptions, in
// order. Patterns use word boundaries where practical to keep false
// positives down.
var textRules = []textRule{
	// Technology
	rule(`\btransformer\b`, "transformer"),
	rule(`\bdiffusion\b`, "diffusion-model"),
	rule(`\b(?:retrieval.augmented|rag)\b`, "rag"),
	rule(`\bmultimodal\b`, "multimodal"),
	rule(`\bnlp\b|\bnatural language\b`, "nlp"),
	rule(`\bcomputer vision\b|\bimage recognition\b|\bobject detection\b`, "computer-vision"),
	rule(`\breinforcement learning\b`, "reinforcement-learning"),
	rule(`\bfine.?tun(?:e|ing)\b`, "fine-tuning"),
	rule(`\bembedding(?:s)?\b|\bvector database\b`, "embedding"),
	rule(`\bspeech.to.text\b|\bspeech recognition\b|\btranscri(?:be|ption)\b`, "speech-to-text"),
	rule(`\btext.to.image\b|\bimage generat(?:e|ion|or)\b`, "text-to-image"),
	rule(`\btext.to.video\b|\bvideo generat(?:e|ion|or)\b`, "text-to-video"),
	rule(`\btext.to.speech\b|\btts\b|\bvoice (?:generat|synthe|clon)`, "text-to-speech"),
	rule(`\bcode generat(?:e|ion|or)\b|\bcode complet(?:e|ion)\b`, "code-generation"),
	rule(`\bmixture.of.experts\b|\bmoe\b`, "moe"),
	// Use case
	rule(`\bchatbot\b|\bchat bot\b|\bconversational ai\b`, "chatbot"),
	rule(`\bcopilot\b|\bcoding assistant\b|\bpair program`, "copilot"),
	rule(`\bwriting assist\b|\bai writ(?:e|er|ing)\b|\bcopywriting\b`, "writing-assistant"),
	rule(`\bdata analy(?:sis|tics)\b|\bdata visual`, "data-analysis"),
	rule(`\bcontent creat(?:e|ion|or)\b`, "content-creation"),
	rule(`\bcustomer (?:support|service)\b|\bhelpdesk\b`, "customer-support"),
	rule(`\bsearch engine\b|\bai search\b`, "search-engine"),
	rule(`\bworkflow automat(?:e|ion)\b|\bprocess automat`, "workflow-automation"),
	rule(`\btranslat(?:e|ion|or)\b`, "translation"),
	rule(`\bmeeting (?:note|summar|transcript)`, "meeting-notes"),
	rule(`\bphoto edit(?:ing|or)\b|\bimage edit(?:ing|or)\b`, "photo-editing"),
	rule(`\bvideo edit(?:ing|or)\b`, "video-editing"),
	rule(`\bcode review\b`, "code-review"),
	rule(`\bagent(?:ic|s)?\b.*\b(?:autonomous|workflow|orchestrat)|\bautonomous agent`, "agents"),
	// Domain
	rule(`\bhealthcare\b|\bmedical\b`, "healthcare"),
	rule(`\bdrug discover\b|\bpharma(?:ceut)?\b`, "drug-discovery"),
	rule(`\bprotein (?:fold|struct|predict)\b`, "protein-folding"),
	rule(`\btrading\b|\bfintech\b`, "trading"),
	rule(`\bfraud detect\b`, "fraud-detection"),
	rule(`\bautonomous vehicl\b|\bself.driving\b`, "self-driving"),
	rule(`\brobot(?:ic)?s?\b`, "robotics"),
	rule(`\bhumanoid\b`, "humanoid-robot"),
	// Business model
	rule(`\bopen.?source\b`, "open-source"),
	rule(`\bsaas\b`, "saas"),
	rule(`\bself.hosted\b|\bon.premise\b`, "self-hosted"),
	// Audience
	rule(`\bfor developer\b|\bdeveloper tool\b|\bdev tool\b`, "developers"),
	rule(`\bdata scien(?:ce|tist)\b`, "data-scientists"),
	rule(`\benterprise\b`, "enterprises"),
	rule(`\bresearcher\b|\bacademi\b`, "researchers"),
	// Technical
	rule(`\breal.time\b`, "real-time"),
	rule(`\bon.device\b|\bedge ai\b`, "edge-ai"),
	rule(`\bbrowser extension\b|\bchrome extension\b`, "browser-extension"),
	rule(`\bsdk\b`, "sdk"),
	rule(`\bcommand.line\b|\bcli\b`, "cli-tool"),
}

// categoryTags are baseline tags implied by an entity's category.
var categoryTags = map[string][]string{
	"ai-model":          {"foundation-model", "researchers"},
	"ai-app":            {"consumers"},
	"ai-dev-tool":       {"developers"},
	"ai-infrastructure": {"developers", "enterprises"},
	"ai-hardware":       {"robotics"},
	"ai-data":           {"data-analysis", "data-scientists"},
	"ai-agent":          {"agents"},
	"ai-search":         {"search-engine"},
	"ai-security":       {"enterprises", "security"},
	"ai-science":        {"researchers", "research"},
}

// platformTags map declared platforms to technical tags.
var platformTags = map[string]string{
	"web":         "saas",
	"ios":         "mobile-app",
	"android":     "mobile-app",
	"desktop":     "desktop-app",
	"api":         "api-service",
	"cli":         "cli-tool",
	"self-hosted": "self-hosted",
}

// pricingTags map pricing models to business-model tags.
var pricingTags = map[string]string{
	"freemium":    "freemium",
	"open-source": "open-source",
	"usage-based": "usage-based",
	"enterprise":  "enterprise",
}

// countryTags map canonical headquarters countries to regional tags.
var countryTags = map[string]string{
	"China":         "china",
	"United States": "us",
	"Japan":         "japan",
	"South Korea":   "korea",
}

// europeanCountries all collapse to the "europe" tag.
var europeanCountries = map[string]bool{
	"United Kingdom": true,
	"Germany":        true,
	"France":         true,
	"Sweden":         true,
	"Norway":         true,
	"Finland":        true,
	"Denmark":        true,
	"Netherlands":    true,
	"Belgium":        true,
	"Switzerland":    true,
	"Austria":        true,
	"Italy":          true,
	"Spain":          true,
	"Portugal":       true,
	"Ireland":        true,
	"Poland":         true,
	"Czech Republic": true,
	"Estonia":        true,
}

// vocabulary is the closed set of tag IDs the engine may emit, built from
// the rule tables so a typo in a rule cannot mint an unknown tag.
var vocabulary = func() map[string]bool {
	vocab := make(map[string]bool)
	for _, r := range textRules {
		for _, t := range r.tags {
			vocab[t] = true
		}
	}
	for _, tags := range categoryTags {
		for _, t := range tags {
			vocab[t] = true
		}
	}
	for _, t := range platformTags {
		vocab[t] = true
	}
	for _, t := range pricingTags {
		vocab[t] = true
	}
	for _, t := range countryTags {
		vocab[t] = true
	}
	for _, t := range []string{"europe", "closed-source", "multimodal"} {
		vocab[t] = true
	}
	return vocab
}()
