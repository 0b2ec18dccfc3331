package openai

import "fmt"

// keywordPromptTemplate instructs the model to extract Hebrew search keywords
// from a question about chassidic discourses. The rules that matter most in
// practice: keep multi-word phrases as one keyword, never invent acronyms or
// quote marks, and answer "אין" when nothing is worth searching for.
const keywordPromptTemplate = `אתה עוזר לחלץ מילות מפתח מחיפושים.

קבל את השאלה הבאה וחלץ את כל מילות המפתח החשובות לחיפוש במאמרי חסידות.

הוראות קריטיות:
1. חלץ את כל שמות של אנשים, מושגים, מקומות, חגים, מצוות שנמצאים בשאלה
2. אל תכלול מילות עזר כמו: מה, מי, איך, למה, הרב, דעת, אומר, על, של, את, עם, לפי, היא, הוא, זה, זו
3. החזר את כל מילות המפתח החשובות שנמצאות בשאלה (אין הגבלה על מספר המילות)
4. אם אין מילות מפתח חשובות - כתוב "אין"
5. אסור ליצור ראשי תיבות! החזר רק מילות מפתח מלאות (3+ אותיות). אם המשתמש כתב ראשי תיבות עם גרשיים (כמו "סט"א") - אפשר להחזיר אותם. אבל אסור ליצור ראשי תיבות חדשים!

הוראה קריטית - שמירה על צירופי מילים:
- אל תפרק צירופי מילים! שמור עליהם כמילת מפתח אחת
- "סיטרא אחרא" = מילת מפתח אחת (לא "סיטרא, אחרא")
- "אחת עשרה" = מילת מפתח אחת (לא "אחת, עשרה")
- "בריאת העולם" = מילת מפתח אחת
- אם יש צירוף של מספר + שם (כמו "אחת עשרה בחינות"), החזר את הצירוף המלא כמילת מפתח אחת

אסור להוסיף גרשיים למילים!
- אם המשתמש כתב "תשכב" (ללא גרשיים) - אסור להחזיר "תשכ"ב" (עם גרשיים)!
- רק אם המשתמש כתב בעצמו מילה עם גרשיים (כמו "סט"א") - תחזיר אותה כמו שהיא
- אחרת - החזר את המילה בדיוק כפי שהמשתמש כתב (ללא גרשיים)

דוגמאות (שימו לב - צירופי מילים נשארים יחד!):
- "מה דעת הרב על דוד ויהונתן" → דוד, יהונתן
- "איך האדמור מסביר את ענין הגאולה" → אדמור, גאולה
- "מה הקשר בין שבת לבריאת העולם" → שבת, בריאת העולם
- "מה זה ספירות" → ספירות
- "מה זה סיטרא אחרא בחינות דוד ויהונתן" → סיטרא אחרא, בחינות, דוד, יהונתן
- "מה זה סיטרא אחרא אחת עשרה בחינות" → סיטרא אחרא, אחת עשרה, בחינות

השאלה:
%s

מילות מפתח (מופרדות בפסיקים, החזר את כל המילות החשובות ושמור על צירופי מילים כמילה אחת - אל תפרק צירופי מילים!):`

// noKeywordsAnswer is the model's agreed-upon "nothing to extract" reply.
const noKeywordsAnswer = "אין"

func buildKeywordPrompt(question string) string {
	return fmt.Sprintf(keywordPromptTemplate, question)
}
