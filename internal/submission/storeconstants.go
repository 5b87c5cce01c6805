/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package submission

import (
	"fmt"

	dbmodel "github.com/casurance/intake/internal/system/database/model"
)

const submissionColumns = "ID, REFERENCE_NUMBER, SUBMISSION_TYPE, INSURANCE_TYPE, CONTACT_NAME, EMAIL, PHONE, " +
	"CITY, STATE, STATUS, NOTES, PAYLOAD, ATTACHMENTS, CREATED_AT, UPDATED_AT"

// Table names come from the product catalog, never from request input.

func queryInsertSubmission(table string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID: "SBQ-SUB_MGT-01:" + table,
		Query: fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)",
			table, submissionColumns),
	}
}

func queryListSubmissions(table string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID:    "SBQ-SUB_MGT-02:" + table,
		Query: fmt.Sprintf("SELECT %s FROM %s ORDER BY CREATED_AT DESC", submissionColumns, table),
	}
}

func querySearchSubmissions(table string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID: "SBQ-SUB_MGT-03:" + table,
		Query: fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(PAYLOAD) LIKE $1 ESCAPE '\\' "+
			"OR LOWER(REFERENCE_NUMBER) LIKE $1 ESCAPE '\\' OR LOWER(CONTACT_NAME) LIKE $1 ESCAPE '\\' "+
			"ORDER BY CREATED_AT DESC", submissionColumns, table),
	}
}

func queryGetSubmission(table string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID:    "SBQ-SUB_MGT-04:" + table,
		Query: fmt.Sprintf("SELECT %s FROM %s WHERE ID = $1", submissionColumns, table),
	}
}

func queryUpdateSubmissionStatus(table string) dbmodel.DBQuery {
	return dbmodel.DBQuery{
		ID:    "SBQ-SUB_MGT-05:" + table,
		Query: fmt.Sprintf("UPDATE %s SET STATUS = $1, NOTES = COALESCE(NULLIF($2, ''), NOTES), UPDATED_AT = $3 WHERE ID = $4", table),
	}
}
