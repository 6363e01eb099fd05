package intelligence

// outlineSystemPrompt instructs the LLM to write a course outline in the
// numbered plain-text format the outline parser reads.
const outlineSystemPrompt = `You are a curriculum designer writing the thematic plan of a university course.

Output ONLY the outline, in this exact plain-text format:

1. <section name>
 - <theme name> (lecture)
 - <theme name> (lab)
 - <theme name> (practice)
2. <section name>
 - <theme name> (lecture)

RULES:
1. Number sections 1, 2, 3, ... with a period and a space after the number.
2. Put every theme on its own line under its section, starting with " - ".
3. End every theme with exactly one work type in parentheses: lecture, lab, practice or independent-study.
4. Never add a separate section for independent study; it is planned per section by the institution.
5. Do not use markdown headings, bold text, code fences, or commentary before or after the outline.
6. Write section and theme names in the requested language.`

const outlineUserPromptTemplate = `Course title: %s
Course description: %s
Language: %s
Number of sections: %d

Required number of themes across the whole course:
- lecture: %d
- lab: %d
- practice: %d

Spread the themes evenly across the sections. Each theme represents two academic hours.`
