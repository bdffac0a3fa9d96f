package repository

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type queryBuilderImpl struct {
	conditions  map[string]interface{}
	expressions []exp.Expression
}

func NewQueryBuilder() QueryBuilder {
	return &queryBuilderImpl{
		conditions: make(map[string]interface{}),
	}
}

func (q *queryBuilderImpl) AddCondition(key string, value interface{}) {
	q.conditions[key] = value
}

// AddExpression adds a condition that cannot be written as column = value.
func (q *queryBuilderImpl) AddExpression(expression exp.Expression) {
	q.expressions = append(q.expressions, expression)
}

func (q *queryBuilderImpl) IsEmpty() bool {
	return len(q.conditions) == 0 && len(q.expressions) == 0
}

func (q *queryBuilderImpl) BuildConditions(aliases map[string]string) exp.ExpressionList {
	conditions := goqu.Ex{}
	for key, value := range q.conditions {
		if alias, ok := aliases[key]; ok {
			conditions[alias] = value
		} else {
			conditions[key] = value
		}
	}

	expressions := []exp.Expression{conditions}
	expressions = append(expressions, q.expressions...)
	return goqu.And(expressions...)
}
