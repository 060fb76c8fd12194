package tagging

// Vocabulary 是按扫描顺序排列的已知技术/主题词表。
// Name 是展示用的规范写法，匹配时统一转小写并按整词比较。
var Vocabulary = []string{
	// 前端
	"React", "Vue", "Angular", "Svelte", "Next.js", "Nuxt", "TypeScript", "JavaScript",
	"HTML", "CSS", "Tailwind", "Redux", "GraphQL", "Webpack", "Vite",

	// 后端
	"Node.js", "Express", "Django", "Flask", "FastAPI", "Spring", "Laravel", "Rails",
	"Golang", "Rust", "Python", "Java", "PHP", "Ruby", "Kotlin", "Swift", "C++", "C#", ".NET",

	// 数据库
	"MongoDB", "PostgreSQL", "MySQL", "Redis", "SQLite", "Elasticsearch", "Firebase", "Prisma", "SQL",

	// DevOps
	"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Terraform", "Jenkins", "GitHub Actions",
	"CI/CD", "Linux", "Nginx", "Git",

	// 工程概念
	"API", "REST", "Microservices", "Testing", "Security", "Performance", "Architecture",
	"Design Patterns", "Algorithms", "Data Structures", "Authentication", "Hooks", "State Management",

	// 通用分类
	"Machine Learning", "AI", "Data Science", "Web Development", "Mobile", "DevOps", "Cloud",
	"Blockchain", "Tutorial", "Career",
}

// keywordGroup 是兜底用的语言关键词组：任一关键词以子串形式出现即命中。
type keywordGroup struct {
	Tag      string
	Keywords []string
}

// languageGroups 在词表一个都没命中时依次检测。
var languageGroups = []keywordGroup{
	{Tag: "JavaScript", Keywords: []string{"javascript", "js ", "es6", "ecmascript"}},
	{Tag: "Python", Keywords: []string{"python", "pip ", "django", "pandas"}},
	{Tag: "Java", Keywords: []string{"java ", "jvm", "maven", "gradle"}},
	{Tag: "Golang", Keywords: []string{"golang", "goroutine", "go mod"}},
	{Tag: "Rust", Keywords: []string{"rustc", "cargo", "borrow checker"}},
	{Tag: "Database", Keywords: []string{"database", "query", "schema"}},
	{Tag: "Frontend", Keywords: []string{"frontend", "front-end", "browser", "component"}},
	{Tag: "Backend", Keywords: []string{"backend", "back-end", "server"}},
}

// contentTypeGroups 是内容类型启发式：最多追加一个标签。
var contentTypeGroups = []keywordGroup{
	{Tag: "Tutorial", Keywords: []string{"tutorial", "step by step", "how to", "getting started", "guide"}},
	{Tag: "Best Practices", Keywords: []string{"best practice", "tips", "pitfall", "mistakes"}},
	{Tag: "Performance", Keywords: []string{"performance", "optimiz", "faster", "benchmark"}},
}

// GenericTopics 是最后的轮转补位列表。
var GenericTopics = []string{
	"Programming", "Web Development", "Software Engineering", "Technology", "Development",
}
