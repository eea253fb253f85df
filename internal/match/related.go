package match

// relatedRoles maps a role to alternative titles that should also be
// accepted in similar mode. Keys are lowercase. Loaded once; read-only
// after init, so safe for concurrent use.
//
// Grow this table as gaps turn up in real searches.
var relatedRoles = map[string][]string{
	// Project / Delivery
	"project manager": {
		"program manager",
		"project lead",
		"delivery manager",
		"delivery lead",
		"technical delivery lead",
		"project coordinator",
		"project officer",
		"project administrator",
		"pmo",
		"project director",
		"it project manager",
		"technical project manager",
		"agile project manager",
		"project specialist",
		"project consultant",
		"engagement manager",
		"implementation manager",
	},
	"program manager": {
		"project manager",
		"portfolio manager",
		"delivery manager",
		"program director",
		"programme manager",
	},
	"delivery manager": {
		"project manager",
		"program manager",
		"engineering manager",
		"release manager",
		"scrum master",
	},
	// Agile / Product
	"scrum master": {
		"agile coach",
		"agile lead",
		"product owner",
		"delivery lead",
		"iteration manager",
	},
	"product manager": {
		"product owner",
		"product director",
		"head of product",
		"digital product manager",
		"technical product manager",
		"vp product",
	},
	"product owner": {
		"product manager",
		"scrum master",
		"business analyst",
	},
	// Business Analysis
	"business analyst": {
		"systems analyst",
		"functional analyst",
		"solution analyst",
		"process analyst",
		"requirements analyst",
		"product analyst",
		"ba",
	},
	// Engineering
	"software engineer": {
		"software developer",
		"programmer",
		"full stack developer",
		"full-stack developer",
		"backend developer",
		"front-end developer",
		"frontend developer",
		"software architect",
		"application developer",
		"developer",
	},
	"software developer": {
		"software engineer",
		"programmer",
		"developer",
		"full stack developer",
	},
	"devops engineer": {
		"site reliability engineer",
		"sre",
		"infrastructure engineer",
		"cloud engineer",
		"platform engineer",
		"build engineer",
		"release engineer",
	},
	// Data
	"data scientist": {
		"machine learning engineer",
		"ml engineer",
		"ai engineer",
		"data analyst",
		"research scientist",
		"data engineer",
	},
	"data analyst": {
		"business intelligence analyst",
		"bi analyst",
		"reporting analyst",
		"analytics engineer",
		"insights analyst",
		"data specialist",
	},
	"data engineer": {
		"analytics engineer",
		"etl developer",
		"data architect",
		"database developer",
	},
	// Design
	"ux designer": {
		"ui designer",
		"ux/ui designer",
		"product designer",
		"interaction designer",
		"user experience designer",
		"user interface designer",
		"visual designer",
	},
	// Sales / Account
	"account manager": {
		"client manager",
		"key account manager",
		"national account manager",
		"customer success manager",
		"relationship manager",
		"sales manager",
	},
	// Marketing
	"marketing manager": {
		"digital marketing manager",
		"content marketing manager",
		"brand manager",
		"growth marketing manager",
		"campaign manager",
		"marketing specialist",
	},
}
