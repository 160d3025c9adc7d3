package indexer

import (
	"context"

	"github.com/cloudwego/eino-ext/components/document/parser/html"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino-ext/components/document/parser/xlsx"
	"github.com/cloudwego/eino/components/document/parser"
)

// newParser 按文件扩展名分发的文档解析器
// pdf 按页解析，其余格式整体解析，未注册的扩展名回退到纯文本
func newParser(ctx context.Context) (parser.Parser, error) {
	textParser := parser.TextParser{}

	pdfParser, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true,
	})
	if err != nil {
		return nil, err
	}

	htmlParser, err := html.NewParser(ctx, &html.Config{})
	if err != nil {
		return nil, err
	}

	xlsxParser, err := xlsx.NewXlsxParser(ctx, &xlsx.Config{})
	if err != nil {
		return nil, err
	}

	extParser, err := parser.NewExtParser(ctx, &parser.ExtParserConfig{
		Parsers: map[string]parser.Parser{
			".pdf":  pdfParser,
			".html": htmlParser,
			".htm":  htmlParser,
			".xlsx": xlsxParser,
		},
		FallbackParser: textParser,
	})
	if err != nil {
		return nil, err
	}

	return extParser, nil
}
