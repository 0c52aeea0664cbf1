package resume

import (
	"strings"
	"time"

	cvpdf "github.com/jason7337/go-cvpdf"
	"github.com/jason7337/go-cvpdf/internal/dateutil"
)

// Extra leading in mm, matching the printed portfolio résumé.
const (
	headerGap  = 5.0 // After the tagline, before contact lines
	jobGap     = 5.0 // Between experience entries
	projectGap = 3.0 // Between projects
)

// contactSeparator joins values on one contact line.
const contactSeparator = " | "

// Build returns the résumé sections for lang in print order: header,
// about, experience, skills, projects, languages, education.
// Missing catalog keys fall back to English, then to the key itself.
func Build(cat *Catalog, p *Profile, lang string) []cvpdf.Section {
	b := &builder{cat: cat, lang: lang}

	b.header(p)
	b.about()
	b.experience(p.Experience)
	b.skills(p.Skills)
	b.projects(p.Projects)
	b.languages(p.LanguageKeys)
	b.education(p.Education)

	return b.sections
}

// builder accumulates sections for one language.
type builder struct {
	cat      *Catalog
	lang     string
	sections []cvpdf.Section
}

func (b *builder) add(s cvpdf.Section) {
	b.sections = append(b.sections, s)
}

func (b *builder) text(key string) string {
	return b.cat.Text(b.lang, key)
}

func (b *builder) header(p *Profile) {
	b.add(cvpdf.Section{Kind: cvpdf.KindTitle, Text: p.Name})
	b.add(cvpdf.Section{Kind: cvpdf.KindSubtitle, Text: b.text("hero.title")})
	b.add(cvpdf.Section{
		Kind:       cvpdf.KindLabeledLine,
		Text:       b.text("hero.subtitle"),
		SpaceAfter: headerGap,
	})

	if len(p.Emails) > 0 {
		b.add(cvpdf.Section{Kind: cvpdf.KindLabeledLine, Text: strings.Join(p.Emails, contactSeparator)})
	}
	if where := joinNonEmpty(p.Phone, p.Location, b.text("hero.remote")); where != "" {
		b.add(cvpdf.Section{Kind: cvpdf.KindLabeledLine, Text: where})
	}
	if p.Portfolio != "" {
		b.add(cvpdf.Section{
			Kind:  cvpdf.KindLabeledLine,
			Label: b.text("resume.labels.portfolio"),
			Text:  p.Portfolio,
		})
	}
	var profiles []string
	if p.GitHub != "" {
		profiles = append(profiles, b.text("resume.labels.github")+": "+p.GitHub)
	}
	if p.LinkedIn != "" {
		profiles = append(profiles, b.text("resume.labels.linkedin")+": "+p.LinkedIn)
	}
	if len(profiles) > 0 {
		b.add(cvpdf.Section{Kind: cvpdf.KindLabeledLine, Text: strings.Join(profiles, contactSeparator)})
	}
}

func (b *builder) about() {
	b.add(cvpdf.Section{
		Kind:    cvpdf.KindBodyParagraph,
		Heading: b.text("about.title"),
		Text:    b.text("about.bio1"),
	})
	b.add(cvpdf.Section{Kind: cvpdf.KindBodyParagraph, Text: b.text("about.bio3")})
}

func (b *builder) experience(jobs []Experience) {
	for i, job := range jobs {
		role := cvpdf.Section{
			Kind:  cvpdf.KindLabeledLine,
			Text:  b.text(job.Key+".title") + " - " + b.text(job.Key+".company"),
			Style: cvpdf.StyleStrong,
		}
		if i == 0 {
			role.Heading = b.text("experience.title")
		}
		b.add(role)
		b.add(cvpdf.Section{Kind: cvpdf.KindLabeledLine, Text: b.text(job.Key + ".period")})
		b.add(cvpdf.Section{Kind: cvpdf.KindBodyParagraph, Text: b.text(job.Key + ".description")})

		achievements := cvpdf.Section{
			Kind:  cvpdf.KindBulletList,
			Items: b.cat.List(b.lang, job.Key+".achievements"),
		}
		if i < len(jobs)-1 {
			achievements.SpaceAfter = jobGap
		}
		b.add(achievements)
	}
}

func (b *builder) skills(categories []SkillCategory) {
	if len(categories) == 0 {
		return
	}
	block := cvpdf.Section{
		Kind:    cvpdf.KindCategoryBlock,
		Heading: b.text("skills.title"),
	}
	for _, c := range categories {
		block.Categories = append(block.Categories, cvpdf.Category{
			Label: b.text(c.LabelKey),
			Items: c.Items,
		})
	}
	b.add(block)
}

func (b *builder) projects(projects []Project) {
	for i, p := range projects {
		name := cvpdf.Section{
			Kind:  cvpdf.KindLabeledLine,
			Text:  b.text(p.Key + ".name"),
			Style: cvpdf.StyleStrong,
		}
		if i == 0 {
			name.Heading = b.text("projects.title")
		}
		b.add(name)
		b.add(cvpdf.Section{
			Kind:  cvpdf.KindBodyParagraph,
			Text:  b.text(p.Key + ".description"),
			Style: cvpdf.StyleSmall,
		})

		if len(p.Technologies) > 0 {
			b.add(cvpdf.Section{
				Kind:  cvpdf.KindLabeledLine,
				Label: b.text("projects.technologies"),
				Text:  strings.Join(p.Technologies, ", "),
			})
		}
		// Links are optional per project.
		linksKey := p.Key + ".links"
		if links := b.text(linksKey); links != linksKey {
			b.add(cvpdf.Section{Kind: cvpdf.KindLabeledLine, Text: links})
		}
		if i < len(projects)-1 {
			b.sections[len(b.sections)-1].SpaceAfter = projectGap
		}
	}
}

func (b *builder) languages(keys []string) {
	if len(keys) == 0 {
		return
	}
	items := make([]string, 0, len(keys))
	for _, k := range keys {
		items = append(items, b.text(k))
	}
	b.add(cvpdf.Section{
		Kind:    cvpdf.KindBulletList,
		Heading: b.text("resume.languages.title"),
		Items:   items,
		Style:   cvpdf.StyleBody,
	})
}

func (b *builder) education(entries []Education) {
	for i, e := range entries {
		degree := cvpdf.Section{
			Kind:  cvpdf.KindLabeledLine,
			Text:  b.text(e.Key + ".degree"),
			Style: cvpdf.StyleStrong,
		}
		if i == 0 {
			degree.Heading = b.text("resume.education.title")
		}
		b.add(degree)
		b.add(cvpdf.Section{
			Kind:  cvpdf.KindLabeledLine,
			Text:  b.text(e.Key + ".school"),
			Style: cvpdf.StyleBody,
		})
	}
}

// Footer returns the localized footer line dated with date.
func Footer(cat *Catalog, lang string, date time.Time) string {
	return strings.ReplaceAll(cat.Text(lang, "resume.footer"), "{date}", dateutil.FormatLong(date, lang))
}

// Metadata returns the document properties for p.
func Metadata(p *Profile, lang string) cvpdf.Metadata {
	return cvpdf.Metadata{
		Title:    p.Name + " - CV",
		Subject:  "Professional Resume",
		Author:   p.Name,
		Keywords: p.Keywords,
		Creator:  p.Creator,
		Language: lang,
	}
}

// ErrorMessage is the localized text shown when generation fails.
func ErrorMessage(cat *Catalog, lang string) string {
	return cat.T(lang, "resume.error")
}

// joinNonEmpty joins the non-empty values with contactSeparator.
func joinNonEmpty(values ...string) string {
	var parts []string
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, contactSeparator)
}
