package keywords

// actionVerbs is the bilingual verb dictionary scanned against
// responsibility strings. Job postings in the wild mix Portuguese and
// English freely, so both sets are always active.
var actionVerbs = map[string]bool{
	// Portuguese
	"desenvolver": true, "implementar": true, "criar": true,
	"gerenciar": true, "liderar": true, "coordenar": true,
	"analisar": true, "projetar": true, "manter": true,
	"otimizar": true, "automatizar": true, "documentar": true,
	"testar": true, "monitorar": true, "integrar": true,
	"colaborar": true, "planejar": true, "executar": true,
	"revisar": true, "apoiar": true,
	// English
	"develop": true, "implement": true, "create": true,
	"manage": true, "lead": true, "coordinate": true,
	"analyze": true, "design": true, "maintain": true,
	"optimize": true, "automate": true, "document": true,
	"test": true, "monitor": true, "integrate": true,
	"collaborate": true, "plan": true, "build": true,
}

// technicalSubstrings marks lowercase tokens as technical even when they
// carry no digit, uppercase letter, hyphen or dot.
var technicalSubstrings = []string{
	"api", "aws", "azure", "backend", "cloud", "css", "database", "devops",
	"docker", "frontend", "git", "golang", "graphql", "html", "java",
	"javascript", "kafka", "kubernetes", "linux", "microsservi", "mongodb",
	"mysql", "node", "postgres", "python", "react", "redis", "rest", "sql",
	"terraform", "typescript",
}

// knownPhrases are multi-word tool/technology names matched
// case-insensitively against the posting text.
var knownPhrases = []string{
	"Apache Kafka",
	"Clean Architecture",
	"GitHub Actions",
	"Google Cloud",
	"Machine Learning",
	"Power BI",
	"React Native",
	"Ruby on Rails",
	"Spring Boot",
	"SQL Server",
	"Visual Studio Code",
}

// acronymFalsePositives are country/state abbreviations that match the bare
// uppercase-token pattern but are never ATS keywords.
var acronymFalsePositives = map[string]bool{
	"BR": true, "SP": true, "RJ": true, "MG": true, "RS": true,
	"PR": true, "SC": true, "BA": true, "CE": true, "PE": true,
	"DF": true, "GO": true, "AM": true, "PA": true, "ES": true,
	"US": true, "USA": true, "UK": true, "EUA": true,
}

// placeholderValues mark a requirements entry as "unspecified" rather than a
// real skill.
var placeholderValues = map[string]bool{
	"não especificado": true,
	"nao especificado": true,
	"não informado":    true,
	"nao informado":    true,
	"n/a":              true,
	"not specified":    true,
	"none":             true,
}
