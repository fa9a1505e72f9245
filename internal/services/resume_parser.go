package services

import (
	"regexp"
	"strings"

	"alfredoptarigan/interview-coach/internal/models"
)

const notFound = "Not found"

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`\+?\d[\d\-() ]{8,}\d`)
	linkedInPattern = regexp.MustCompile(`(?i)https?://\S+linkedin\.com\S*`)
	gitHubPattern   = regexp.MustCompile(`(?i)https?://\S+github\.com\S*`)
	projectPattern  = regexp.MustCompile(`(?i)project[:\-]?[ \t]*(.*)`)
)

// skillKeywords are matched as case-insensitive substrings, reported in
// this order.
var skillKeywords = []string{
	// AI/ML
	"python", "tensorflow", "pytorch", "scikit-learn", "nlp", "computer vision",
	// Web
	"html", "css", "javascript", "react", "node", "django", "flask",
	// Mobile
	"flutter", "react native", "swift", "kotlin", "android studio", "xcode",
	// DevOps
	"docker", "kubernetes", "aws", "azure", "terraform", "jenkins",
	// Data
	"pandas", "numpy", "sql", "tableau", "power bi",
	// Blockchain
	"solidity", "ethereum", "web3", "smart contracts", "truffle",
	// UI/UX
	"figma", "adobe xd", "sketch", "user research", "wireframing",
	// QA
	"selenium", "junit", "testng", "cypress", "jmeter",
	// Cloud
	"gcp", "serverless", "lambda", "ec2",
	// Security
	"penetration testing", "owasp", "kali linux", "siem",
}

// ParseResume pulls contact details, skills and projects out of plain
// résumé text. Missing fields fall back to defaults rather than failing.
func ParseResume(text string) models.ParsedResume {
	parsed := models.ParsedResume{
		Name:     "Name Not Found",
		Email:    firstMatch(emailPattern, text),
		Phone:    firstMatch(phonePattern, text),
		LinkedIn: firstMatch(linkedInPattern, text),
		GitHub:   firstMatch(gitHubPattern, text),
		Skills:   []string{},
		Projects: []string{},
	}

	if text != "" {
		parsed.Name = strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	}

	lower := strings.ToLower(text)
	for _, skill := range skillKeywords {
		if strings.Contains(lower, skill) {
			parsed.Skills = append(parsed.Skills, skill)
		}
	}

	for _, m := range projectPattern.FindAllStringSubmatch(text, -1) {
		if len(parsed.Projects) == 3 {
			break
		}
		parsed.Projects = append(parsed.Projects, strings.TrimSpace(m[1]))
	}

	return parsed
}

func firstMatch(re *regexp.Regexp, text string) string {
	if m := re.FindString(text); m != "" {
		return m
	}
	return notFound
}
