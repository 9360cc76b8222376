package main

import "github.com/Zachkp/portfolio/internal/counter"

var (
	Headline = "Passion Empowers Purpose!"

	Biography = []string{
		`With over years of experience in software engineering, I cultivated strong expertise in
	multiple technologies. My daily work starts with practical application of JavaScript. As I love
	data, so I know how to extract it using web scrapers, clean it, and make it beautiful using a
	powerful tool called Regular Expressions.`,

		`Along side I create UI components using one of the amazing libraries of JavaScript, React.js!
	I am Coursera's Meta certified React developer. Knows the implementation of server side
	architecture with Express.js and Node.js.`,

		`I hold cloud certifications from vendors like AWS and Azure with their prestigious
	certification programs - AWS Solutions Architect Associate and Azure Data Engineering,
	underscoring my proficiency in cloud technologies.`,

		`My career reflects a blend of technical expertise and a dedication to continuous learning
	which makes me a complete full stack engineer. I am quick to adapt to new technologies, driven
	by a deep curiosity to understand the fundamentals, which enables me to develop innovative
	solutions that meet business needs.`,
	}

	Stats = []counter.Stat{
		{Key: "clients", Label: "satisfied clients", Target: 10, Suffix: "+"},
		{Key: "projects", Label: "projects completed", Target: 30, Suffix: "+"},
		{Key: "years", Label: "years of experiences", Target: 4, Suffix: "+"},
	}
)
