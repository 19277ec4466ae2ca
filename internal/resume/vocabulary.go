package resume

// Vocabulary is the closed set of skills recognized in résumé text, in match priority order.
var Vocabulary = []string{
	"python",
	"java",
	"javascript",
	"typescript",
	"go",
	"golang",
	"rust",
	"c++",
	"c#",
	"sql",
	"postgresql",
	"mongodb",
	"redis",
	"docker",
	"kubernetes",
	"aws",
	"azure",
	"gcp",
	"linux",
	"git",
	"html",
	"css",
	"react",
	"angular",
	"vue",
	"node.js",
	"django",
	"flask",
	"spring",
	"machine learning",
	"deep learning",
	"data analysis",
	"excel",
	"tableau",
	"power bi",
	"agile",
	"scrum",
	"communication",
	"leadership",
	"teamwork",
	"problem solving",
	"project management",
}

// EducationKeywords mark the line that describes a degree.
var EducationKeywords = []string{
	"bachelor",
	"master",
	"phd",
	"ph.d",
	"b.sc",
	"m.sc",
	"b.tech",
	"m.tech",
	"mba",
	"diploma",
	"degree",
}
