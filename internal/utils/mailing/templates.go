package mailing

import (
	"bytes"
	"html/template"
)

var completedTmpl = template.Must(template.New("completed").Parse(`<p>Hi {{.Name}},</p>
<p>Your {{.Type}} of <b>{{.AmountKg}} kg</b> {{.Category}} waste to {{.BuyerName}} is complete.</p>
<p>You earned <b>{{.GreenCoins}} green coins</b> and kept about {{.CO2Saved}} kg of CO2 out of the air.</p>
{{if .AppURL}}<p><a href="{{.AppURL}}">Open Worthy Waste</a></p>{{end}}`))

type TransactionCompletedData struct {
	Name       string
	Type       string
	AmountKg   float64
	Category   string
	BuyerName  string
	GreenCoins int
	CO2Saved   float64
	AppURL     string
}

func TransactionCompletedBody(data TransactionCompletedData) (string, error) {
	var buf bytes.Buffer
	if err := completedTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
