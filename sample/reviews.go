// Package sample provides a small built-in review dataset for demo runs
// and tests, so the full pipeline can be exercised without downloading a
// dataset file.
package sample

import "github.com/Avik9/Sentimental-Analysis/corpus"

// row is one synthetic review before tokenization.
type row struct {
	itemID int
	rating int
	userID string
	text   string
}

// trainRows lean heavily on a small repeated vocabulary so that even a
// min-count-1 embedding space has enough co-occurrence to train on.
var trainRows = []row{
	{101, 5, "ana", "great product really great taste and great value"},
	{102, 5, "ana", "excellent snack excellent flavor would buy again"},
	{103, 4, "ana", "good product good flavor slightly pricey"},
	{104, 5, "ben", "great flavor great texture my favorite snack"},
	{105, 4, "ben", "good value good taste happy with this product"},
	{106, 5, "ben", "excellent product excellent value highly recommend"},
	{107, 4, "cho", "good snack nice flavor decent value"},
	{108, 5, "cho", "great taste excellent texture really great"},
	{109, 3, "cho", "average product average flavor nothing special"},
	{110, 4, "dee", "good taste good texture solid snack"},
	{111, 5, "dee", "excellent taste great product love this flavor"},
	{112, 4, "dee", "good product nice texture would recommend"},
	{113, 2, "eli", "bad flavor disappointing product stale taste"},
	{114, 1, "eli", "awful taste terrible texture bad product"},
	{115, 2, "eli", "bad snack disappointing value would not buy"},
	{116, 5, "fay", "great product great value excellent flavor"},
	{117, 4, "fay", "good flavor good snack tasty and fresh"},
	{118, 5, "fay", "excellent snack great taste really fresh"},
	{119, 3, "gus", "average taste okay texture fair value"},
	{120, 4, "gus", "good product fresh flavor nice snack"},
	{121, 5, "gus", "great value great flavor very fresh product"},
	{122, 5, "ana", "excellent flavor great snack fresh and tasty"},
	{123, 4, "ben", "good texture good flavor fresh product"},
	{124, 5, "cho", "great snack excellent taste would buy again"},
}

// trialRows keep ratings concentrated near the training mean so a
// mean-reverting regressor stays inside the MAE eligibility ceiling.
var trialRows = []row{
	{201, 5, "ana", "great product excellent flavor really fresh"},
	{202, 4, "ben", "good snack good taste nice value"},
	{203, 5, "cho", "excellent taste great texture love this snack"},
	{204, 4, "dee", "good flavor fresh product solid value"},
	{205, 5, "fay", "great snack great value excellent taste"},
	{206, 4, "gus", "good product good texture tasty snack"},
	{207, 5, "ana", "excellent product great flavor would buy again"},
	{208, 4, "eli", "good taste decent texture fair product"},
}

// CheckItems are the demo spot-check ids: three present in the trial set
// and one deliberately absent to show the "not in file" path.
var CheckItems = []int{201, 204, 208, 999}

func build(rows []row) corpus.Corpus {
	records := make(corpus.Corpus, len(rows))
	for i, r := range rows {
		records[i] = corpus.Record{
			ItemID: r.itemID,
			Rating: r.rating,
			UserID: r.userID,
			Tokens: corpus.Tokenize(r.text),
		}
	}
	return records
}

// Train returns the demo training corpus.
func Train() corpus.Corpus {
	return build(trainRows)
}

// Trial returns the demo held-out corpus.
func Trial() corpus.Corpus {
	return build(trialRows)
}
