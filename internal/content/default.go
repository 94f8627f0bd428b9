package content

// Default returns the built-in portfolio. Each call returns a fresh copy.
func Default() *Portfolio {
	return &Portfolio{
		Profile: Profile{
			FirstName: "Anup Kumar",
			LastName:  "Tiwari",
			Headline:  "Technical Trainer & Full Stack Developer",
			Tagline: `Passionate about delivering high-quality training and developing innovative solutions
with expertise in Java, Python, ReactJS, and Cloud Computing.`,
			Roles: []string{"Technical Trainer", "Full Stack Developer", "Cloud Expert", "ML Enthusiast"},
			Summary: `Full Stack Developer with expertise in backend and frontend technologies,
including **Java, Python, ReactJS, and Spring Boot**. Experienced technical trainer
proficient in Data Science, Machine Learning, and Cloud Computing.
Passionate about delivering high-quality training and developing innovative solutions.`,
		},

		Nav: []NavItem{
			{Name: "Home", Target: "#home"},
			{Name: "About", Target: "#about"},
			{Name: "Experience", Target: "#experience"},
			{Name: "Skills", Target: "#skills"},
			{Name: "Projects", Target: "#projects"},
			{Name: "Contact", Target: "#contact"},
		},

		Channels: []ContactChannel{
			{Icon: "phone", Label: "Phone", Value: "6306137338", Link: "tel:6306137338", Accent: "from-cyan-500/20 to-blue-500/20"},
			{Icon: "mail", Label: "Email", Value: "anupt6028@gmail.com", Link: "mailto:anupt6028@gmail.com", Accent: "from-purple-500/20 to-pink-500/20"},
			{Icon: "linkedin", Label: "LinkedIn", Value: "Connect with me", Link: "https://www.linkedin.com/in/anup-kumar-tiwari/", Accent: "from-green-500/20 to-teal-500/20"},
			{Icon: "map-pin", Label: "Location", Value: "Available for Remote Work", Link: "#", Accent: "from-orange-500/20 to-red-500/20"},
		},

		Highlights: []Highlight{
			{
				Icon:        "code",
				Title:       "Full Stack Development",
				Description: "Expertise in backend and frontend technologies including Java, Python, ReactJS, and Spring Boot",
				Accent:      "from-cyan-500/20 to-blue-500/20",
			},
			{
				Icon:        "users",
				Title:       "Technical Training",
				Description: "Experienced in delivering training on Data Science, Machine Learning, and Cloud Computing",
				Accent:      "from-purple-500/20 to-pink-500/20",
			},
			{
				Icon:        "lightbulb",
				Title:       "Innovation Focus",
				Description: "Passionate about developing innovative solutions and staying current with emerging technologies",
				Accent:      "from-yellow-500/20 to-orange-500/20",
			},
		},

		Facts: []Fact{
			{Label: "Role:", Value: "Technical Trainer & Full Stack Developer"},
			{Label: "Education:", Value: "B.E. Computer Science"},
			{Label: "Specialties:", Value: "Java, Python, React, Cloud"},
			{Label: "Focus:", Value: "Training & Development"},
		},

		Strengths: []ProficiencyRating{
			{Name: "Full Stack Development", Percentage: 95},
			{Name: "Technical Training", Percentage: 98},
			{Name: "Cloud Computing", Percentage: 85},
			{Name: "Machine Learning", Percentage: 80},
		},

		Experience: []ExperienceEntry{
			{
				Title:        "Technical Trainer",
				Organization: "Bizotic",
				Location:     "Remote",
				Period:       PeriodCurrent,
				Responsibilities: []string{
					"Conducted training on DSA and Competitive Coding with Java, Python, and C++",
					"Delivered hands-on training in Data Science and Machine Learning using Pandas, NumPy, and scikit-learn",
				},
				Accent: "from-cyan-500/20 to-blue-500/20",
			},
			{
				Title:        "Technical Trainer",
				Organization: "Audaz",
				Location:     "Reva University",
				Period:       "Previous",
				Responsibilities: []string{
					"Led workshops in Java, Python, C++, and DSA at Reva University",
					"Mentored students in competitive programming and software development",
				},
				Accent: "from-purple-500/20 to-pink-500/20",
			},
			{
				Title:        "Technical Trainer",
				Organization: "Edvise",
				Location:     "Remote",
				Period:       "Previous",
				Responsibilities: []string{
					"Delivered Microsoft Azure DP-900 certification training",
					"Prepared students for cloud computing certifications",
				},
				Accent: "from-green-500/20 to-teal-500/20",
			},
			{
				Title:        "Technical Trainer",
				Organization: "Skill Aura",
				Location:     "Adhiyamaan College",
				Period:       "Previous",
				Responsibilities: []string{
					"Delivered Computer Networks lectures and practical labs",
					"Designed curriculum for networking fundamentals",
				},
				Accent: "from-orange-500/20 to-red-500/20",
			},
		},

		Education: []EducationEntry{
			{
				Icon:        "graduation-cap",
				Title:       "Academic Qualification",
				Subtitle:    "Bachelor of Engineering",
				Description: "Computer Science Engineering",
				Institution: "Noida Institute of Engineering and Technology",
				Accent:      "from-cyan-500/20 to-blue-500/20",
			},
			{
				Icon:        "award",
				Title:       "Certifications",
				Subtitle:    "Microsoft Azure DP-900",
				Description: "Azure Data Fundamentals",
				Institution: "Multiple institutions",
				Accent:      "from-purple-500/20 to-pink-500/20",
			},
			{
				Icon:        "book-open",
				Title:       "Continuous Learning",
				Subtitle:    "Ongoing Development",
				Description: "Modern Technologies",
				Institution: "Self-directed & Professional",
				Accent:      "from-green-500/20 to-teal-500/20",
			},
		},

		LearningAreas: []string{
			"Data Science & Machine Learning",
			"Cloud Computing Technologies",
			"Modern Web Development",
			"Competitive Programming",
		},

		Skills: []SkillCategory{
			{
				Icon:   "code",
				Title:  "Programming Languages",
				Skills: []string{"Java", "Python", "JavaScript", "TypeScript", "C++"},
				Accent: "from-cyan-500/20 to-blue-500/20",
			},
			{
				Icon:   "settings",
				Title:  "Frameworks & Libraries",
				Skills: []string{"Spring Boot", "Spring Data JPA", "ReactJS", "Node.js", "Express.js"},
				Accent: "from-purple-500/20 to-pink-500/20",
			},
			{
				Icon:   "database",
				Title:  "Databases & Tools",
				Skills: []string{"MySQL", "MongoDB", "PostgreSQL", "Git", "Docker", "Jenkins"},
				Accent: "from-green-500/20 to-teal-500/20",
			},
			{
				Icon:   "cloud",
				Title:  "Cloud & Technologies",
				Skills: []string{"Microsoft Azure", "AWS", "RESTful APIs", "HTML/CSS", "Bootstrap"},
				Accent: "from-orange-500/20 to-red-500/20",
			},
		},

		Concepts: []ProficiencyRating{
			{Name: "Object-Oriented Programming", Percentage: 95, Accent: "from-cyan-400 to-blue-500"},
			{Name: "Database Management Systems", Percentage: 90, Accent: "from-purple-400 to-pink-500"},
			{Name: "Cloud Computing", Percentage: 85, Accent: "from-green-400 to-teal-500"},
			{Name: "Data Structures & Algorithms", Percentage: 92, Accent: "from-orange-400 to-red-500"},
			{Name: "Machine Learning", Percentage: 80, Accent: "from-yellow-400 to-orange-500"},
			{Name: "Data Science", Percentage: 88, Accent: "from-pink-400 to-purple-500"},
		},

		Project: Project{
			Title:    "Online Test Management System",
			Subtitle: "MERN Stack Application",
			Description: `A comprehensive online test platform designed to facilitate both **MCQ and coding
assessments** with role-based access for administrators and students.`,
			TechStack: []string{"MongoDB", "Express.js", "ReactJS", "Node.js"},
			Features: []Feature{
				{Icon: "users", Text: "Admin and Student role management", Accent: "from-cyan-500/20 to-blue-500/20"},
				{Icon: "code", Text: "MCQ and coding question support", Accent: "from-purple-500/20 to-pink-500/20"},
				{Icon: "database", Text: "Excel-based question upload system", Accent: "from-green-500/20 to-teal-500/20"},
				{Icon: "rocket", Text: "Judge0 integration for code execution", Accent: "from-orange-500/20 to-red-500/20"},
				{Icon: "video", Text: "Video content integration", Accent: "from-yellow-500/20 to-orange-500/20"},
			},
			Highlights: []string{
				"Secure authentication and authorization",
				"Real-time code compilation and execution",
				"Comprehensive test analytics and reporting",
				"Responsive design for all devices",
			},
		},

		Availability: []string{
			"Technical Training & Workshops",
			"Full Stack Development Projects",
			"Consulting & Code Reviews",
			"Remote & On-site Opportunities",
		},

		Footer: Footer{
			Tagline: "Technical Trainer & Full Stack Developer passionate about education and innovation",
			Links: []NavItem{
				{Target: "#about"},
				{Target: "#experience"},
				{Target: "#skills"},
				{Target: "#projects"},
				{Target: "#contact"},
			},
			Services: []string{
				"Technical Training",
				"Full Stack Development",
				"Machine Learning Training",
				"Cloud Computing Consultation",
				"Code Reviews & Mentoring",
			},
		},
	}
}
